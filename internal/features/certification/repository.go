package certification

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CertificationRepository interface {
	Create(ctx context.Context, c *Certification) error
	FindByID(ctx context.Context, id string) (*Certification, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Certification, error)
	List(ctx context.Context, activeOnly bool) ([]Certification, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Certification, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type CertificationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCertificationRepository(mongodb *database.MongodbDB) CertificationRepository {
	return &CertificationRepositoryImpl{
		Collection: mongodb.DB.Collection("certifications"),
	}
}

func (r *CertificationRepositoryImpl) Create(ctx context.Context, c *Certification) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, c)
	return err
}

func (r *CertificationRepositoryImpl) FindByID(ctx context.Context, id string) (*Certification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var c Certification
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CertificationRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Certification, error) {
	if len(ids) == 0 {
		return []Certification{}, nil
	}
	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var certs []Certification
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *CertificationRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]Certification, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var certs []Certification
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *CertificationRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Certification, error) {
	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c Certification
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CertificationRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CertificationRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
