package order

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/common/models"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/features/product"
	"greenbasket/internal/features/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("item quantity must be at least 1")
	ErrNotYourOrder      = errors.New("order belongs to another account")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPaymentMethod     = errors.New("unsupported payment method")
)

// ShippingPolicy quotes the delivery charge for a cart subtotal. Implemented
// by the settings service so staff can tune rates without a deploy.
type ShippingPolicy interface {
	Quote(ctx context.Context, subtotal float64) (float64, error)
}

// loyaltyEarnRate: one point per this much spent.
const loyaltyEarnRate = 10

type OrderService interface {
	PlaceOrder(ctx context.Context, identity *authz.Identity, req *PlaceOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, identity *authz.Identity, id string) (*Order, error)
	MyOrders(ctx context.Context, identity *authz.Identity, page, pageSize int64) (*models.Paged[Order], error)
	CancelOrder(ctx context.Context, identity *authz.Identity, id string) (*Order, error)

	ListOrders(ctx context.Context, q ListOrdersQuery) (*models.Paged[Order], error)
	UpdateStatus(ctx context.Context, actor *authz.Identity, id string, req *UpdateStatusRequest) (*Order, error)
}

type OrderServiceImpl struct {
	repo     OrderRepository
	products product.ProductRepository
	users    user.UserRepository
	shipping ShippingPolicy
	logger   *zap.Logger
}

func NewOrderService(
	repo OrderRepository,
	products product.ProductRepository,
	users user.UserRepository,
	shipping ShippingPolicy,
	logger *zap.Logger,
) OrderService {
	return &OrderServiceImpl{repo: repo, products: products, users: users, shipping: shipping, logger: logger}
}

func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, identity *authz.Identity, req *PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	switch req.PaymentMethod {
	case PaymentCOD, PaymentCard, PaymentUPI, PaymentWallet:
	default:
		return nil, ErrPaymentMethod
	}

	// Stock is reserved item by item with atomic decrements. On any failure
	// the decrements made so far are put back.
	var reserved []Item
	restock := func() {
		for _, it := range reserved {
			if _, err := s.products.AdjustStock(ctx, it.Product, it.Quantity); err != nil {
				s.logger.Error("failed to restock after aborted checkout",
					zap.String("product_id", it.Product.Hex()),
					zap.Int("quantity", it.Quantity),
					zap.Error(err))
			}
		}
	}

	var subtotal float64
	for _, line := range req.Items {
		if line.Quantity < 1 {
			restock()
			return nil, ErrInvalidQuantity
		}

		p, err := s.products.FindByID(ctx, line.Product)
		if err != nil {
			restock()
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, product.ErrProductNotFound
			}
			return nil, err
		}
		if !p.IsActive {
			restock()
			return nil, product.ErrProductNotFound
		}

		if _, err := s.products.AdjustStock(ctx, p.ID, -line.Quantity); err != nil {
			restock()
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, product.ErrInsufficientStock
			}
			return nil, err
		}

		price := p.EffectivePrice()
		item := Item{
			Product:  p.ID,
			Name:     p.Name,
			Price:    price,
			Quantity: line.Quantity,
			Subtotal: price * float64(line.Quantity),
		}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		reserved = append(reserved, item)
		subtotal += item.Subtotal
	}

	shipping, err := s.shipping.Quote(ctx, subtotal)
	if err != nil {
		restock()
		return nil, err
	}

	now := time.Now()
	o := &Order{
		User:          identity.ID,
		Items:         reserved,
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         subtotal + shipping,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: PaymentPending,
		Status:        StatusPending,
		History: []StatusChange{
			{Status: StatusPending, ChangedBy: &identity.ID, ChangedAt: now},
		},
	}
	if err := s.repo.Create(ctx, o); err != nil {
		restock()
		return nil, err
	}

	// Commerce profile bookkeeping is best-effort.
	points := int(o.Total / loyaltyEarnRate)
	_, err = s.users.Update(ctx, identity.ID, bson.M{
		"$inc": bson.M{
			"total_orders":   1,
			"total_spent":    o.Total,
			"loyalty_points": points,
		},
	})
	if err != nil {
		s.logger.Warn("failed to update customer totals",
			zap.String("user_id", identity.ID.Hex()), zap.Error(err))
	}

	return o, nil
}

// GetOrder loads an order and enforces ownership. Staff at operator tier and
// above may read any order.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, identity *authz.Identity, id string) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !authz.OwnsResource(identity, o.User) {
		return nil, ErrNotYourOrder
	}
	return o, nil
}

func (s *OrderServiceImpl) MyOrders(ctx context.Context, identity *authz.Identity, page, pageSize int64) (*models.Paged[Order], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = models.StorePageSize
	}

	orders, total, err := s.repo.List(ctx, bson.M{"user": identity.ID}, page, pageSize)
	if err != nil {
		return nil, err
	}
	paged := models.NewPaged(orders, page, total, pageSize)
	return &paged, nil
}

func (s *OrderServiceImpl) CancelOrder(ctx context.Context, identity *authz.Identity, id string) (*Order, error) {
	o, err := s.GetOrder(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.Cancellable() {
		return nil, ErrNotCancellable
	}

	change := StatusChange{
		Status:    StatusCancelled,
		Note:      "cancelled by customer",
		ChangedBy: &identity.ID,
		ChangedAt: time.Now(),
	}
	updated, err := s.repo.UpdateStatus(ctx, o.ID, StatusCancelled, change, nil)
	if err != nil {
		return nil, err
	}

	for _, it := range o.Items {
		if _, err := s.products.AdjustStock(ctx, it.Product, it.Quantity); err != nil {
			s.logger.Error("failed to restock cancelled order item",
				zap.String("order_id", o.ID.Hex()),
				zap.String("product_id", it.Product.Hex()),
				zap.Error(err))
		}
	}
	return updated, nil
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context, q ListOrdersQuery) (*models.Paged[Order], error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Number != "" {
		filter["number"] = q.Number
	}
	if q.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(q.UserID)
		if err != nil {
			return nil, ErrOrderNotFound
		}
		filter["user"] = oid
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = models.AdminPageSize
	}

	orders, total, err := s.repo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	paged := models.NewPaged(orders, page, total, pageSize)
	return &paged, nil
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, actor *authz.Identity, id string, req *UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !CanTransition(o.Status, req.Status) {
		return nil, ErrInvalidTransition
	}

	extra := bson.M{}
	switch req.Status {
	case StatusDelivered:
		extra["delivered_at"] = time.Now()
		if o.PaymentMethod == PaymentCOD {
			extra["payment_status"] = PaymentPaid
		}
	case StatusRefunded:
		extra["payment_status"] = PaymentRefunded
	}

	change := StatusChange{
		Status:    req.Status,
		Note:      req.Note,
		ChangedBy: &actor.ID,
		ChangedAt: time.Now(),
	}
	updated, err := s.repo.UpdateStatus(ctx, o.ID, req.Status, change, extra)
	if err != nil {
		return nil, err
	}

	if req.Status == StatusCancelled {
		for _, it := range o.Items {
			if _, err := s.products.AdjustStock(ctx, it.Product, it.Quantity); err != nil {
				s.logger.Error("failed to restock cancelled order item",
					zap.String("order_id", o.ID.Hex()),
					zap.String("product_id", it.Product.Hex()),
					zap.Error(err))
			}
		}
	}
	return updated, nil
}
