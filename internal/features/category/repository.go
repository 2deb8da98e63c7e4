package category

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type CategoryRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCategoryRepository(mongodb *database.MongodbDB) CategoryRepository {
	return &CategoryRepositoryImpl{
		Collection: mongodb.DB.Collection("categories"),
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, c *Category) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, c)
	return err
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id string) (*Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var c Category
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	var c Category
	if err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Category, error) {
	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c Category
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CategoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
