package permission

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PermissionRepository interface {
	FindBySlug(ctx context.Context, slug string) (*Permission, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Permission, error)
	ListActive(ctx context.Context) ([]Permission, error)
	List(ctx context.Context) ([]Permission, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpsertBySlug(ctx context.Context, p *Permission) error
	EnsureIndexes(ctx context.Context) error
}

type PermissionRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPermissionRepository(mongodb *database.MongodbDB) PermissionRepository {
	return &PermissionRepositoryImpl{
		collection: mongodb.DB.Collection("permissions"),
	}
}

func (r *PermissionRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Permission, error) {
	var p Permission
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perms []Permission
	if err := cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) ListActive(ctx context.Context) ([]Permission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "resource", Value: 1}, {Key: "action", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perms []Permission
	if err := cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]Permission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "slug", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perms []Permission
	if err := cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PermissionRepositoryImpl) UpsertBySlug(ctx context.Context, p *Permission) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":       p.Name,
			"category":   p.Category,
			"resource":   p.Resource,
			"action":     p.Action,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"slug":       p.Slug,
			"is_active":  true,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"slug": p.Slug}, update, opts)
	return err
}

func (r *PermissionRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "action", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
