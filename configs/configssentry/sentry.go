package configssentry

import (
	"time"

	"ormakal.in/configs"
	"ormakal.in/configs/configslog"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// InitSentry sets up the global Sentry client. It returns false when SENTRY_DSN is empty
// or the client could not be created, in which case error reporting stays off.
func InitSentry(cfg configs.SentryConfig) bool {
	if cfg.DSN == "" {
		configslog.SLog.Info("SENTRY_DSN not set, error reporting disabled")
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			configslog.Log.Debug("Sentry event captured", zap.String("event_id", string(event.EventID)))
			return event
		},
	})
	if err != nil {
		configslog.Log.Error("Sentry could not be initialized", zap.Error(err))
		return false
	}

	configslog.SLog.Infof("Sentry error reporting enabled (environment: %s)", cfg.Environment)
	return true
}

// FlushSentry waits for queued events to be delivered.
func FlushSentry() {
	if !sentry.Flush(2 * time.Second) {
		configslog.Log.Warn("Sentry flush timed out, some events may be lost")
	}
}
