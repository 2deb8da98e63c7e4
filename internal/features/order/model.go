package order

import (
	"time"

	"greenbasket/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
)

// transitions lists the statuses each status may move to. Delivered orders
// can still be refunded; cancelled and refunded are terminal.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery, StatusDelivered},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {StatusRefunded},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable statuses are the ones a customer may still back out of.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Item is a snapshot of the product at purchase time. Later product edits do
// not rewrite order history.
type Item struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
	Price    float64            `json:"price" bson:"price"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Subtotal float64            `json:"subtotal" bson:"subtotal"`
}

type StatusChange struct {
	Status    Status              `json:"status" bson:"status"`
	Note      string              `json:"note,omitempty" bson:"note,omitempty"`
	ChangedBy *primitive.ObjectID `json:"changed_by,omitempty" bson:"changed_by,omitempty"`
	ChangedAt time.Time           `json:"changed_at" bson:"changed_at"`
}

type Order struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Number string             `json:"number" bson:"number"`
	User   primitive.ObjectID `json:"user" bson:"user"`
	Items  []Item             `json:"items" bson:"items"`

	Subtotal float64 `json:"subtotal" bson:"subtotal"`
	Shipping float64 `json:"shipping" bson:"shipping"`
	Discount float64 `json:"discount" bson:"discount"`
	Total    float64 `json:"total" bson:"total"`

	Address user.Address `json:"address" bson:"address"`

	PaymentMethod PaymentMethod `json:"payment_method" bson:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" bson:"payment_status"`

	Status  Status         `json:"status" bson:"status"`
	History []StatusChange `json:"history" bson:"history"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

type PlaceOrderItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items         []PlaceOrderItem `json:"items"`
	Address       user.Address     `json:"address"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

type ListOrdersQuery struct {
	Status   Status
	UserID   string
	Number   string
	Page     int64
	PageSize int64
}
