package inventory

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/features/product"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrZeroAdjustment = errors.New("adjustment delta cannot be zero")
)

type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

type InventoryService interface {
	Overview(ctx context.Context) (*Overview, error)
	LowStock(ctx context.Context) ([]product.Product, error)
	Adjust(ctx context.Context, productID string, req *AdjustStockRequest, actor primitive.ObjectID) (*product.Product, error)
	Movements(ctx context.Context, productID string, limit int64) ([]Movement, error)

	// ScanLowStock pushes an alert for every product currently at or below
	// its threshold. The scheduler calls this periodically as a safety net
	// for alerts missed while no dashboard was connected.
	ScanLowStock(ctx context.Context) (int, error)
}

type InventoryServiceImpl struct {
	repo     InventoryRepository
	products product.ProductRepository
	hub      *Hub
	logger   *zap.Logger
}

func NewInventoryService(repo InventoryRepository, products product.ProductRepository, hub *Hub, logger *zap.Logger) InventoryService {
	return &InventoryServiceImpl{repo: repo, products: products, hub: hub, logger: logger}
}

func (s *InventoryServiceImpl) Overview(ctx context.Context) (*Overview, error) {
	return s.repo.Overview(ctx)
}

func (s *InventoryServiceImpl) LowStock(ctx context.Context) ([]product.Product, error) {
	return s.products.ListLowStock(ctx)
}

func (s *InventoryServiceImpl) Adjust(ctx context.Context, productID string, req *AdjustStockRequest, actor primitive.ObjectID) (*product.Product, error) {
	if req.Delta == 0 {
		return nil, ErrZeroAdjustment
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}

	updated, err := s.products.AdjustStock(ctx, p.ID, req.Delta)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrInsufficientStock
		}
		return nil, err
	}

	movement := &Movement{
		Product:  updated.ID,
		Delta:    req.Delta,
		StockNow: updated.Stock,
		Reason:   req.Reason,
		Actor:    &actor,
	}
	if err := s.repo.RecordMovement(ctx, movement); err != nil {
		s.logger.Warn("failed to record stock movement",
			zap.String("product_id", updated.ID.Hex()), zap.Error(err))
	}

	s.maybeAlert(updated)
	return updated, nil
}

func (s *InventoryServiceImpl) Movements(ctx context.Context, productID string, limit int64) ([]Movement, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, product.ErrProductNotFound
	}
	return s.repo.ListMovements(ctx, oid, limit)
}

func (s *InventoryServiceImpl) ScanLowStock(ctx context.Context) (int, error) {
	low, err := s.products.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}
	for i := range low {
		s.maybeAlert(&low[i])
	}
	return len(low), nil
}

func (s *InventoryServiceImpl) maybeAlert(p *product.Product) {
	if !p.LowStock() {
		return
	}
	alertType := AlertLowStock
	if p.Stock <= 0 {
		alertType = AlertOutOfStock
	}
	s.hub.Broadcast(Alert{
		Type:      alertType,
		ProductID: p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		Threshold: p.LowStockThreshold,
		At:        time.Now(),
	})
}
