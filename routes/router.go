package routes

import (
	"ormakal.in/handlers"
	"ormakal.in/pkg/gallery"
	"ormakal.in/pkg/localization"
	"ormakal.in/services"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the services the routes are served from.
type Dependencies struct {
	MemorialService   services.IMemorialService
	CondolenceService services.ICondolenceService
	I18n              localization.Manager
	// GalleryInspector backs the image host debug routes. Nil when the host is not configured.
	GalleryInspector gallery.Inspector

	PublicDir      string
	Debug          bool
	ErrorReporting bool
}

// SetupRoutes registers middleware, pages, the API and the 404 fallback.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recoverMiddleware.New())
	if deps.ErrorReporting {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}
	app.Use(logger.New())
	app.Use(cors.New())

	memorialHandler := handlers.NewMemorialHandler(deps.MemorialService, deps.I18n)

	registerPageRoutes(app, memorialHandler)
	registerCondolenceRoutes(app, handlers.NewCondolenceHandler(deps.CondolenceService))
	if deps.Debug {
		registerDebugRoutes(app, memorialHandler, handlers.NewGalleryDebugHandler(deps.GalleryInspector))
	}

	if deps.PublicDir != "" {
		app.Static("/", deps.PublicDir)
	}

	app.Use(handlers.NotFound(deps.I18n))
}

func registerPageRoutes(app *fiber.App, h *handlers.MemorialHandler) {
	app.Get("/", h.Home)
	app.Get("/funeral", h.Funeral)
	app.Get("/photos", h.Photos)
}

func registerCondolenceRoutes(app *fiber.App, h *handlers.CondolenceHandler) {
	api := app.Group("/api/condolences")
	api.Post("/submit", h.Submit)
	// Approval is not authenticated.
	api.Post("/approve/:id", h.Approve)
}

func registerDebugRoutes(app *fiber.App, h *handlers.MemorialHandler, gh *handlers.GalleryDebugHandler) {
	debug := app.Group("/debug")
	debug.Get("/condolences", h.DebugCondolences)
	debug.Get("/folders", gh.Folders)
	debug.Get("/resources", gh.Resources)
}
