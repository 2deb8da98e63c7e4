package order

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status, change StatusChange, extra bson.M) (*Order, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type OrderRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOrderRepository(mongodb *database.MongodbDB) OrderRepository {
	return &OrderRepositoryImpl{
		Collection: mongodb.DB.Collection("orders"),
	}
}

// newOrderNumber is date-prefixed so support staff can read an order's age at
// a glance. The random suffix keeps concurrent checkouts apart.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("GB-%s-%06d", now.Format("20060102"), rand.Intn(1000000))
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, o *Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if o.Number == "" {
		o.Number = newOrderNumber(now)
	}
	_, err := r.Collection.InsertOne(ctx, o)
	return err
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var o Order
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Order, int64, error) {
	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(pageSize).
		SetSkip(pageSize * (page - 1))

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status, change StatusChange, extra bson.M) (*Order, error) {
	set := bson.M{"status": status, "updated_at": time.Now()}
	for k, v := range extra {
		set[k] = v
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"history": change},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o Order
	if err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

func (r *OrderRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
