package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ormakal.in/configs"
	"ormakal.in/configs/configsdatabase"
	"ormakal.in/configs/configslog"
	"ormakal.in/configs/configssentry"
	"ormakal.in/handlers"
	"ormakal.in/pkg/gallery"
	"ormakal.in/pkg/localization"
	"ormakal.in/pkg/mailer"
	"ormakal.in/repositories"
	"ormakal.in/repositories/mongorepo"
	"ormakal.in/routes"
	"ormakal.in/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.GetConfig()

	errorReporting := configssentry.InitSentry(cfg.Sentry)
	if errorReporting {
		defer configssentry.FlushSentry()
	}

	obituaries, condolences, closeStore := openStores(cfg)
	defer closeStore()

	i18n := localization.MustNewManager()

	templates, err := mailer.NewTemplates()
	if err != nil {
		configslog.Log.Fatal("Email templates could not be loaded", zap.Error(err))
	}
	if !cfg.Mail.Enabled() {
		configslog.Log.Warn("GMAIL_USER / GMAIL_APP_PASSWORD not set, notification emails will fail and be logged")
	}
	notifier := services.NewNotificationService(
		mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			Timeout:  cfg.Mail.SendTimeout,
		}),
		templates,
		services.NotificationConfig{
			AdminEmail:  cfg.Mail.AdminEmail,
			WebsiteURL:  cfg.Mail.WebsiteURL,
			SendTimeout: cfg.Mail.SendTimeout,
		},
	)

	galleryProvider, galleryInspector := newGallery(cfg.Gallery)

	app := fiber.New(fiber.Config{
		Views:        handlers.NewViewEngine(cfg.ViewsDir, !cfg.IsProduction()),
		AppName:      "ormakal",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		MemorialService:   services.NewMemorialService(obituaries, condolences, galleryProvider, i18n, services.GalleryOptions{Folder: cfg.Gallery.Folder, MaxResults: cfg.Gallery.MaxResults}),
		CondolenceService: services.NewCondolenceService(obituaries, condolences, notifier),
		I18n:              i18n,
		GalleryInspector:  galleryInspector,
		PublicDir:         cfg.PublicDir,
		Debug:             cfg.AppDebug,
		ErrorReporting:    errorReporting,
	})

	go func() {
		configslog.SLog.Infof("Server running on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			configslog.Log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("Server shutdown failed", zap.Error(err))
	}
	notifier.Wait()
}

func openStores(cfg *configs.AppConfig) (repositories.IObituaryRepository, repositories.ICondolenceRepository, func()) {
	if cfg.Database.Driver == configs.DriverMongo {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		configsdatabase.InitMongo(ctx)
		db := configsdatabase.GetMongo()
		return mongorepo.NewObituaryRepo(db), mongorepo.NewCondolenceRepo(db), func() {
			configsdatabase.CloseMongo(context.Background())
		}
	}

	configsdatabase.InitDB()
	db := configsdatabase.GetDB()
	return repositories.NewObituaryRepository(db), repositories.NewCondolenceRepository(db), configsdatabase.CloseDB
}

func newGallery(cfg configs.GalleryConfig) (gallery.Provider, gallery.Inspector) {
	if !cfg.Enabled() {
		configslog.Log.Warn("Cloudinary credentials not set, photo gallery will be empty")
		return gallery.NoopProvider{}, nil
	}
	cloudinary := gallery.NewCloudinaryProvider(gallery.CloudinaryConfig{
		CloudName:  cfg.CloudName,
		APIKey:     cfg.APIKey,
		APISecret:  cfg.APISecret,
		BaseURL:    cfg.BaseURL,
		RetryCount: 2,
	})
	if cfg.CacheTTL <= 0 {
		return cloudinary, cloudinary
	}
	return gallery.NewCachedProvider(cloudinary, cfg.CacheTTL), cloudinary
}

