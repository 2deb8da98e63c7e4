package settings

import (
	"context"
	"time"

	"greenbasket/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*StoreSettings, error)
	Update(ctx context.Context, set bson.M) (*StoreSettings, error)
	EnsureDefaults(ctx context.Context) error
}

type SettingsRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSettingsRepository(mongodb *database.MongodbDB) SettingsRepository {
	return &SettingsRepositoryImpl{
		Collection: mongodb.DB.Collection("settings"),
	}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*StoreSettings, error) {
	var s StoreSettings
	if err := r.Collection.FindOne(ctx, bson.M{"key": settingsKey}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepositoryImpl) Update(ctx context.Context, set bson.M) (*StoreSettings, error) {
	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s StoreSettings
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"key": settingsKey}, bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EnsureDefaults inserts the settings document if it is missing. Runs at
// startup so reads never have to handle the absent case.
func (r *SettingsRepositoryImpl) EnsureDefaults(ctx context.Context) error {
	def := defaults()
	def.UpdatedAt = time.Now()

	update := bson.M{"$setOnInsert": def}
	opts := options.Update().SetUpsert(true)
	_, err := r.Collection.UpdateOne(ctx, bson.M{"key": settingsKey}, update, opts)
	return err
}
