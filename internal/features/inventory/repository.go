package inventory

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Movement is one stock adjustment, kept as an audit trail alongside the
// product's live counter.
type Movement struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Product   primitive.ObjectID  `json:"product" bson:"product"`
	Delta     int                 `json:"delta" bson:"delta"`
	StockNow  int                 `json:"stock_now" bson:"stock_now"`
	Reason    string              `json:"reason,omitempty" bson:"reason,omitempty"`
	Actor     *primitive.ObjectID `json:"actor,omitempty" bson:"actor,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// Overview is the aggregate picture the admin dashboard opens with.
type Overview struct {
	TotalProducts int64   `json:"total_products" bson:"total_products"`
	OutOfStock    int64   `json:"out_of_stock" bson:"out_of_stock"`
	LowStock      int64   `json:"low_stock" bson:"low_stock"`
	StockValue    float64 `json:"stock_value" bson:"stock_value"`
}

type InventoryRepository interface {
	RecordMovement(ctx context.Context, m *Movement) error
	ListMovements(ctx context.Context, productID primitive.ObjectID, limit int64) ([]Movement, error)
	Overview(ctx context.Context) (*Overview, error)
	EnsureIndexes(ctx context.Context) error
}

type InventoryRepositoryImpl struct {
	Movements *mongo.Collection
	Products  *mongo.Collection
}

func NewInventoryRepository(mongodb *database.MongodbDB) InventoryRepository {
	return &InventoryRepositoryImpl{
		Movements: mongodb.DB.Collection("stock_movements"),
		Products:  mongodb.DB.Collection("products"),
	}
}

func (r *InventoryRepositoryImpl) RecordMovement(ctx context.Context, m *Movement) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()
	_, err := r.Movements.InsertOne(ctx, m)
	return err
}

func (r *InventoryRepositoryImpl) ListMovements(ctx context.Context, productID primitive.ObjectID, limit int64) ([]Movement, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := r.Movements.Find(ctx, bson.M{"product": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var movements []Movement
	if err := cursor.All(ctx, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *InventoryRepositoryImpl) Overview(ctx context.Context) (*Overview, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total_products": bson.M{"$sum": 1},
			"out_of_stock": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$lte": bson.A{"$stock", 0}}, 1, 0},
			}},
			"low_stock": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$and": bson.A{
						bson.M{"$gt": bson.A{"$stock", 0}},
						bson.M{"$lte": bson.A{"$stock", "$low_stock_threshold"}},
					}},
					1, 0,
				},
			}},
			"stock_value": bson.M{"$sum": bson.M{"$multiply": bson.A{"$stock", "$price"}}},
		}}},
	}

	cursor, err := r.Products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []Overview
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &Overview{}, nil
	}
	return &results[0], nil
}

func (r *InventoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.Movements.Indexes().CreateMany(ctx, indexes)
	return err
}
