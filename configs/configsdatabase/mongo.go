package configsdatabase

import (
	"context"
	"time"

	"ormakal.in/configs"
	"ormakal.in/configs/configslog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

var mongoDB *mongo.Database

// InitMongo connects to MONGODB_URI. The database name is taken from the URI path.
func InitMongo(ctx context.Context) {
	uri := configs.GetConfig().Database.MongoURI

	connDSN, err := connstring.ParseAndValidate(uri)
	if err != nil {
		configslog.Log.Fatal("Invalid MONGODB_URI", zap.Error(err))
	}
	dbName := connDSN.Database
	if dbName == "" {
		dbName = "ormakal"
	}

	client, err := mongo.Connect(ctx,
		options.Client().ApplyURI(connDSN.String()),
		options.Client().SetConnectTimeout(10*time.Second),
		options.Client().SetServerSelectionTimeout(10*time.Second),
	)
	if err != nil {
		configslog.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		configslog.Log.Fatal("MongoDB ping failed", zap.Error(err))
	}

	mongoDB = client.Database(dbName)
	configslog.SLog.Infof("Connected to MongoDB (database: %s)", dbName)
}

// GetMongo returns the shared database handle. InitMongo must have been called.
func GetMongo() *mongo.Database {
	if mongoDB == nil {
		configslog.Log.Fatal("MongoDB not initialized, call InitMongo first")
	}
	return mongoDB
}

// CloseMongo disconnects the client.
func CloseMongo(ctx context.Context) {
	if mongoDB == nil {
		return
	}
	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		configslog.Log.Error("Failed to disconnect MongoDB", zap.Error(err))
		return
	}
	configslog.SLog.Info("MongoDB connection closed")
}
