package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is used for structured error/warning entries (zap.String, zap.Error...).
	Log *zap.Logger
	// SLog is the sugared logger for lifecycle messages (Infof, Debugf).
	SLog *zap.SugaredLogger
)

func init() {
	// No-op until InitLogger runs, so packages can log during init and in tests.
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger builds a development (console) or production (JSON) logger based on APP_ENV.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	SetLogger(logger)
}

// SetLogger swaps the global loggers. Tests use it with zaptest/observer.
func SetLogger(logger *zap.Logger) {
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered entries; call it with defer from main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
