package role

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*Role, error)
	FindBySlug(ctx context.Context, slug string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Role, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type RoleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRoleRepository(mongodb *database.MongodbDB) RoleRepository {
	return &RoleRepositoryImpl{
		Collection: mongodb.DB.Collection("roles"),
	}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *Role) error {
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	if role.Permissions == nil {
		role.Permissions = []primitive.ObjectID{}
	}

	_, err := r.Collection.InsertOne(ctx, role)
	return err
}

func (r *RoleRepositoryImpl) FindByID(ctx context.Context, id string) (*Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.FindByObjectID(ctx, oid)
}

func (r *RoleRepositoryImpl) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*Role, error) {
	var role Role
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Role, error) {
	var role Role
	if err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) List(ctx context.Context) ([]Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "level", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var roles []Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Update takes a plain field map, not an operator document: it is wrapped in
// $set here, so callers must not nest their own operators.
func (r *RoleRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*Role, error) {
	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var role Role
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *RoleRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "level", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
