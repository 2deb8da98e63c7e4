package brand

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BrandRepository interface {
	Create(ctx context.Context, b *Brand) error
	FindByID(ctx context.Context, id string) (*Brand, error)
	FindBySlug(ctx context.Context, slug string) (*Brand, error)
	List(ctx context.Context, activeOnly bool) ([]Brand, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Brand, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type BrandRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewBrandRepository(mongodb *database.MongodbDB) BrandRepository {
	return &BrandRepositoryImpl{
		Collection: mongodb.DB.Collection("brands"),
	}
}

func (r *BrandRepositoryImpl) Create(ctx context.Context, b *Brand) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, b)
	return err
}

func (r *BrandRepositoryImpl) FindByID(ctx context.Context, id string) (*Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var b Brand
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Brand, error) {
	var b Brand
	if err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]Brand, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []Brand
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *BrandRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Brand, error) {
	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b Brand
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BrandRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
