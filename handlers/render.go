package handlers

import (
	"time"

	"ormakal.in/pkg/content"
	"ormakal.in/pkg/localization"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

const mainLayout = "layouts/main"

// NewViewEngine loads the page templates from dir with the helpers they use.
func NewViewEngine(dir string, reload bool) *html.Engine {
	engine := html.New(dir, ".html")
	engine.Reload(reload)
	engine.AddFunc("formatDate", func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	})
	engine.AddFunc("year", func(t time.Time) int {
		return t.Year()
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	return engine
}

// requestLanguage reads ?lang=, defaulting to English.
func requestLanguage(c *fiber.Ctx) content.Language {
	return content.ParseLanguage(c.Query("lang"))
}

// pageData is the map shared by every page template.
func pageData(c *fiber.Ctx, i18n localization.Manager, lang content.Language, title string) fiber.Map {
	return fiber.Map{
		"Title":       title,
		"Lang":        lang,
		"LangCode":    lang.Code(),
		"Content":     i18n.Content(lang),
		"CurrentPath": c.Path(),
	}
}

func renderNotFound(c *fiber.Ctx, i18n localization.Manager) error {
	lang := requestLanguage(c)
	data := pageData(c, i18n, lang, i18n.Translate(lang, "notFoundTitle", nil))
	data["Message"] = i18n.Translate(lang, "notFoundMessage", nil)
	return c.Status(fiber.StatusNotFound).Render("errors/404", data, mainLayout)
}

func renderError(c *fiber.Ctx, i18n localization.Manager, message string, err error) error {
	reportError(c, err)
	lang := requestLanguage(c)
	data := pageData(c, i18n, lang, i18n.Translate(lang, "errorTitle", nil))
	data["Message"] = message
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", data, mainLayout)
}

// reportError forwards err to the request's Sentry hub. It does nothing when
// error reporting is not enabled.
func reportError(c *fiber.Ctx, err error) {
	if err == nil {
		return
	}
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

// NotFound answers unmatched routes with JSON or the 404 page depending on Accept.
func NotFound(i18n localization.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Accepts("application/json", "text/html") == "application/json" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
		}
		return renderNotFound(c, i18n)
	}
}
