package mongorepo

import (
	"context"

	"ormakal.in/configs/configslog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the read path relies on. Safe to run repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	configslog.SLog.Info("Creating MongoDB indexes...")

	_, err := db.Collection(obituaryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_obituaries_active"),
	})
	if err != nil {
		configslog.Log.Error("Failed to create obituaries index", zap.Error(err))
		return err
	}

	_, err = db.Collection(condolenceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "obituaryId", Value: 1},
			{Key: "isApproved", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_condolences_display"),
	})
	if err != nil {
		configslog.Log.Error("Failed to create condolences index", zap.Error(err))
		return err
	}

	configslog.SLog.Info("MongoDB indexes created.")
	return nil
}
