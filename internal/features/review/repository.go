package review

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (*Review, error)
	List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Review, int64, error)
	SetApproved(ctx context.Context, id primitive.ObjectID, approved bool) (*Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// RatingSummary aggregates approved reviews for one product.
	RatingSummary(ctx context.Context, productID primitive.ObjectID) (avg float64, count int64, err error)
	EnsureIndexes(ctx context.Context) error
}

type ReviewRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewReviewRepository(mongodb *database.MongodbDB) ReviewRepository {
	return &ReviewRepositoryImpl{
		Collection: mongodb.DB.Collection("reviews"),
	}
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, rv *Review) error {
	now := time.Now()
	rv.CreatedAt = now
	rv.UpdatedAt = now
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, rv)
	return err
}

func (r *ReviewRepositoryImpl) FindByID(ctx context.Context, id string) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var rv Review
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepositoryImpl) FindByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (*Review, error) {
	var rv Review
	err := r.Collection.FindOne(ctx, bson.M{"product": productID, "user": userID}).Decode(&rv)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepositoryImpl) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Review, int64, error) {
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

	var reviews []Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) SetApproved(ctx context.Context, id primitive.ObjectID, approved bool) (*Review, error) {
	update := bson.M{"$set": bson.M{"is_approved": approved, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rv Review
	if err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ReviewRepositoryImpl) RatingSummary(ctx context.Context, productID primitive.ObjectID) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": productID, "is_approved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Avg, rows[0].Count, nil
}

func (r *ReviewRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "is_approved", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
