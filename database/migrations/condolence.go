package migrations

import (
	"ormakal.in/configs/configslog"
	"ormakal.in/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCondolencesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating condolences table...")
	if err := db.AutoMigrate(&models.Condolence{}); err != nil {
		configslog.Log.Error("Failed to migrate condolences table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Condolences table migrated successfully")
	return nil
}
