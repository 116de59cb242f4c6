package configsdatabase

import (
	"time"

	"ormakal.in/configs"
	"ormakal.in/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the postgres connection described by the DB_* variables.
func InitDB() {
	cfg := configs.GetConfig().Database

	gormLogLevel := logger.Warn
	if !configs.GetConfig().IsProduction() {
		gormLogLevel = logger.Info
	}

	var err error
	db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(gormLogLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		configslog.Log.Fatal("Failed to connect to database",
			zap.String("host", cfg.Host),
			zap.String("dbname", cfg.Name),
			zap.Error(err),
		)
	}

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("Failed to get sql.DB from gorm", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	configslog.SLog.Infof("Connected to PostgreSQL (%s:%s/%s)", cfg.Host, cfg.Port, cfg.Name)
}

// GetDB returns the shared connection. InitDB must have been called.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Database not initialized, call InitDB first")
	}
	return db
}

// CloseDB closes the underlying pool.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Failed to get sql.DB while closing", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Failed to close database connection", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database connection closed")
}
