package user

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter bson.M, page, pageSize int64) ([]User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error)
	SetFailedLogin(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error
	ResetLoginAttempts(ctx context.Context, id primitive.ObjectID) error
	RecordSeen(ctx context.Context, id primitive.ObjectID, ip string, at time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("users"),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Permissions == nil {
		user.Permissions = []primitive.ObjectID{}
	}

	_, err := r.Collection.InsertOne(ctx, user)
	return err
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var user User
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]User, int64, error) {
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

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*User, error) {
	set, ok := update["$set"].(bson.M)
	if !ok {
		set = bson.M{}
		update["$set"] = set
	}
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user User
	if err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepositoryImpl) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"role": roleID})
}

func (r *UserRepositoryImpl) SetFailedLogin(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error {
	update := bson.M{"$set": bson.M{"login_attempts": attempts}}
	if lockUntil != nil {
		update["$set"].(bson.M)["lock_until"] = *lockUntil
	} else {
		update["$unset"] = bson.M{"lock_until": 1}
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *UserRepositoryImpl) ResetLoginAttempts(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set":   bson.M{"login_attempts": 0},
		"$unset": bson.M{"lock_until": 1},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *UserRepositoryImpl) RecordSeen(ctx context.Context, id primitive.ObjectID, ip string, at time.Time) error {
	update := bson.M{"$set": bson.M{"last_login": at, "last_login_ip": ip}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *UserRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
