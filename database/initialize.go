package database

import (
	"context"
	"errors"

	"ormakal.in/configs/configslog"
	"ormakal.in/database/migrations"
	"ormakal.in/database/seeders"
	"ormakal.in/repositories"
	"ormakal.in/repositories/mongorepo"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs the requested postgres migrations and seeders in one transaction.
func Initialize(ctx context.Context, db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither -migrate nor -seed given, nothing to do.")
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Running migrations...")
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
			configslog.SLog.Info("Migrations completed.")
		}

		if seed {
			configslog.SLog.Info("Running seeders...")
			if err := seeders.SeedSampleObituary(ctx, repositories.NewObituaryRepositoryTx(tx)); err != nil {
				return err
			}
			configslog.SLog.Info("Seeders completed.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Database initialization failed, rolled back", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Database initialization completed successfully")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateObituariesTable(db); err != nil {
		return err
	}
	return migrations.MigrateCondolencesTable(db)
}

// InitializeMongo creates the collection indexes and seeds the sample obituary.
func InitializeMongo(ctx context.Context, db *mongo.Database, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither -migrate nor -seed given, nothing to do.")
		return nil
	}

	var errs []error
	if migrate {
		configslog.SLog.Info("Ensuring MongoDB indexes...")
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			configslog.Log.Error("Index creation failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if seed && len(errs) == 0 {
		configslog.SLog.Info("Running seeders...")
		if err := seeders.SeedSampleObituary(ctx, mongorepo.NewObituaryRepo(db)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
