package configs

import (
	"fmt"
	"os"
	"sync"
	"time"

	"ormakal.in/configs/configslog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// AppConfig holds every setting read from the environment (.env is loaded first if present).
type AppConfig struct {
	Port     string `env:"PORT" envDefault:"3000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppDebug bool   `env:"APP_DEBUG" envDefault:"false"`

	ViewsDir  string `env:"VIEWS_DIR" envDefault:"./views"`
	PublicDir string `env:"PUBLIC_DIR" envDefault:"./public"`

	Database DatabaseConfig
	Mail     MailConfig
	Gallery  GalleryConfig
	Sentry   SentryConfig
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"ormakal"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone string `env:"DB_TIMEZONE" envDefault:"UTC"`
	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/ormakal"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}

type MailConfig struct {
	Host        string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port        int           `env:"SMTP_PORT" envDefault:"587"`
	Username    string        `env:"GMAIL_USER"`
	Password    string        `env:"GMAIL_APP_PASSWORD"`
	AdminEmail  string        `env:"ADMIN_EMAIL"`
	WebsiteURL  string        `env:"WEBSITE_URL" envDefault:"http://localhost:3000"`
	SendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether SMTP credentials are configured.
func (m MailConfig) Enabled() bool {
	return m.Username != "" && m.Password != ""
}

type GalleryConfig struct {
	CloudName  string        `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey     string        `env:"CLOUDINARY_API_KEY"`
	APISecret  string        `env:"CLOUDINARY_API_SECRET"`
	BaseURL    string        `env:"CLOUDINARY_API_URL" envDefault:"https://api.cloudinary.com"`
	Folder     string        `env:"CLOUDINARY_FOLDER" envDefault:"obit-project/family-photos/"`
	MaxResults int           `env:"GALLERY_MAX_RESULTS" envDefault:"100"`
	CacheTTL   time.Duration `env:"GALLERY_CACHE_TTL" envDefault:"5m"`
}

// Enabled reports whether image-host credentials are configured.
func (g GalleryConfig) Enabled() bool {
	return g.CloudName != "" && g.APIKey != "" && g.APISecret != ""
}

type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT"`
	Debug       bool   `env:"SENTRY_DEBUG" envDefault:"false"`
}

var (
	appConfig *AppConfig
	loadOnce  sync.Once
)

// LoadEnv loads .env into the process environment. A missing file is not an error.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		configslog.Log.Warn(".env file could not be loaded", zap.Error(err))
	}
}

// Parse reads AppConfig from the current environment.
func Parse() (*AppConfig, error) {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverMongo {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected %q or %q)", cfg.Database.Driver, DriverPostgres, DriverMongo)
	}
	if cfg.Gallery.MaxResults <= 0 {
		cfg.Gallery.MaxResults = 100
	}
	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.AppEnv
	}
	return &cfg, nil
}

// GetConfig loads .env once and returns the process-wide configuration.
func GetConfig() *AppConfig {
	loadOnce.Do(func() {
		LoadEnv()
		cfg, err := Parse()
		if err != nil {
			configslog.Log.Fatal("Configuration could not be loaded", zap.Error(err))
		}
		appConfig = cfg
	})
	return appConfig
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}
