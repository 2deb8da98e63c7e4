package product

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByObjectIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	List(ctx context.Context, filter bson.M, sort bson.D, page, pageSize int64) ([]Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (*Product, error)
	ListLowStock(ctx context.Context) ([]Product, error)
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	CountByBrand(ctx context.Context, brandID primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type ProductRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewProductRepository(mongodb *database.MongodbDB) ProductRepository {
	return &ProductRepositoryImpl{
		Collection: mongodb.DB.Collection("products"),
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, p *Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Certifications == nil {
		p.Certifications = []primitive.ObjectID{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err := r.Collection.InsertOne(ctx, p)
	return err
}

func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var p Product
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	if err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) FindByObjectIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) List(ctx context.Context, filter bson.M, sort bson.D, page, pageSize int64) ([]Product, int64, error) {
	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if len(sort) == 0 {
		sort = bson.D{{Key: "created_at", Value: -1}}
	}
	opts := options.Find().
		SetSort(sort).
		SetLimit(pageSize).
		SetSkip(pageSize * (page - 1))

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Product, error) {
	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p Product
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustStock applies a signed delta atomically. A negative delta that would
// drive stock below zero matches no document and returns ErrNoDocuments.
func (r *ProductRepositoryImpl) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (*Product, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p Product
	if err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) ListLowStock(ctx context.Context) ([]Product, error) {
	filter := bson.M{
		"is_active": true,
		"$expr":     bson.M{"$lte": bson.A{"$stock", "$low_stock_threshold"}},
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "stock", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"category": categoryID})
}

func (r *ProductRepositoryImpl) CountByBrand(ctx context.Context, brandID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"brand": brandID})
}

func (r *ProductRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "stock", Value: 1}}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
