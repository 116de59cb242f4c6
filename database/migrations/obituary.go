package migrations

import (
	"ormakal.in/configs/configslog"
	"ormakal.in/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateObituariesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating obituaries table...")
	if err := db.AutoMigrate(&models.Obituary{}); err != nil {
		configslog.Log.Error("Failed to migrate obituaries table", zap.Error(err))
		return err
	}

	// Partial unique index: at most one active obituary.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_obituaries_single_active ON obituaries (is_active) WHERE is_active`).Error; err != nil {
		configslog.Log.Error("Failed to create single-active index", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Obituaries table migrated successfully")
	return nil
}
