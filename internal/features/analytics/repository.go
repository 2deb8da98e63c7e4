package analytics

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DailySales is one revenue bucket of the sales report.
type DailySales struct {
	Date    string  `json:"date" bson:"_id"`
	Orders  int64   `json:"orders" bson:"orders"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

// TopProduct ranks products by units sold over the report window.
type TopProduct struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Units     int64              `json:"units" bson:"units"`
	Revenue   float64            `json:"revenue" bson:"revenue"`
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalOrders   int64   `json:"total_orders" bson:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue" bson:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value" bson:"avg_order_value"`
	Customers     int64   `json:"customers"`
}

type AnalyticsRepository interface {
	SalesByDay(ctx context.Context, from, to time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int64) ([]TopProduct, error)
	OrderSummary(ctx context.Context, from, to time.Time) (*Summary, error)
	CustomerCount(ctx context.Context) (int64, error)
}

type AnalyticsRepositoryImpl struct {
	Orders *mongo.Collection
	Users  *mongo.Collection
}

func NewAnalyticsRepository(mongodb *database.MongodbDB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{
		Orders: mongodb.DB.Collection("orders"),
		Users:  mongodb.DB.Collection("users"),
	}
}

// countedStatuses: cancelled and refunded orders do not contribute revenue.
var countedStatuses = bson.A{"confirmed", "processing", "shipped", "out_for_delivery", "delivered"}

func salesMatch(from, to time.Time) bson.M {
	return bson.M{
		"created_at": bson.M{"$gte": from, "$lt": to},
		"status":     bson.M{"$in": countedStatuses},
	}
}

func (r *AnalyticsRepositoryImpl) SalesByDay(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: salesMatch(from, to)}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.Orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []DailySales
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepositoryImpl) TopProducts(ctx context.Context, from, to time.Time, limit int64) ([]TopProduct, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: salesMatch(from, to)}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$items.product",
			"name":    bson.M{"$first": "$items.name"},
			"units":   bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": "$items.subtotal"},
		}}},
		{{Key: "$sort", Value: bson.M{"units": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.Orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []TopProduct
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepositoryImpl) OrderSummary(ctx context.Context, from, to time.Time) (*Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: salesMatch(from, to)}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"total_orders":  bson.M{"$sum": 1},
			"total_revenue": bson.M{"$sum": "$total"},
			"avg_order_value": bson.M{"$avg": "$total"},
		}}},
	}

	cursor, err := r.Orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []Summary
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Summary{}, nil
	}
	return &rows[0], nil
}

func (r *AnalyticsRepositoryImpl) CustomerCount(ctx context.Context) (int64, error) {
	return r.Users.CountDocuments(ctx, bson.M{"is_active": true, "is_admin": false})
}
