package activity

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepository interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Entry, int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type ActivityRepositoryImpl struct {
	collection *mongo.Collection
}

func NewActivityRepository(mongodb *database.MongodbDB) ActivityRepository {
	return &ActivityRepositoryImpl{
		collection: mongodb.DB.Collection("activity_logs"),
	}
}

func (r *ActivityRepositoryImpl) Insert(ctx context.Context, entry *Entry) error {
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *ActivityRepositoryImpl) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Entry, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(pageSize).
		SetSkip(pageSize * (page - 1))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *ActivityRepositoryImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ActivityRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
