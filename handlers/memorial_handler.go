package handlers

import (
	"ormakal.in/configs/configslog"
	"ormakal.in/pkg/content"
	"ormakal.in/pkg/localization"
	"ormakal.in/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemorialHandler serves the public pages.
type MemorialHandler struct {
	memorialService services.IMemorialService
	i18n            localization.Manager
}

func NewMemorialHandler(memorialService services.IMemorialService, i18n localization.Manager) *MemorialHandler {
	return &MemorialHandler{memorialService: memorialService, i18n: i18n}
}

// renderSetup is shown until an obituary has been activated.
func (h *MemorialHandler) renderSetup(c *fiber.Ctx, lang content.Language) error {
	data := pageData(c, h.i18n, lang, h.i18n.Translate(lang, "setupTitle", nil))
	return c.Render("setup", data, mainLayout)
}

// Home renders the obituary with its approved condolences.
func (h *MemorialHandler) Home(c *fiber.Ctx) error {
	lang := requestLanguage(c)

	page, err := h.memorialService.BuildView(c.UserContext(), lang)
	if err != nil {
		configslog.Log.Error("Home: BuildView error", zap.String("lang", string(lang)), zap.Error(err))
		return renderError(c, h.i18n, "Unable to load obituary", err)
	}
	if !page.Configured {
		return h.renderSetup(c, lang)
	}

	data := pageData(c, h.i18n, lang, page.Obituary.Name)
	data["Page"] = page
	return c.Render("index", data, mainLayout)
}

func (h *MemorialHandler) Funeral(c *fiber.Ctx) error {
	lang := requestLanguage(c)

	page, err := h.memorialService.BuildFuneral(c.UserContext(), lang)
	if err != nil {
		configslog.Log.Error("Funeral: BuildFuneral error", zap.String("lang", string(lang)), zap.Error(err))
		return renderError(c, h.i18n, "Unable to load funeral details", err)
	}
	if !page.Configured {
		return h.renderSetup(c, lang)
	}

	data := pageData(c, h.i18n, lang, h.i18n.Translate(lang, "funeralDetails", nil)+" | "+page.Obituary.Name)
	data["Page"] = page
	return c.Render("funeral", data, mainLayout)
}

func (h *MemorialHandler) Photos(c *fiber.Ctx) error {
	lang := requestLanguage(c)

	page, err := h.memorialService.BuildGallery(c.UserContext(), lang)
	if err != nil {
		configslog.Log.Error("Photos: BuildGallery error", zap.String("lang", string(lang)), zap.Error(err))
		return renderError(c, h.i18n, "Unable to load photos", err)
	}
	if !page.Configured {
		return h.renderSetup(c, lang)
	}

	data := pageData(c, h.i18n, lang, h.i18n.Translate(lang, "photoGallery", nil)+" | "+page.Obituary.Name)
	data["Page"] = page
	data["TotalPhotosLabel"] = h.i18n.Translate(lang, "totalPhotos", map[string]any{"Count": page.TotalPhotos})
	return c.Render("photos", data, mainLayout)
}

// DebugCondolences dumps record identifiers. Mounted only when APP_DEBUG is set.
func (h *MemorialHandler) DebugCondolences(c *fiber.Ctx) error {
	snapshot, err := h.memorialService.Debug(c.UserContext())
	if err != nil {
		configslog.Log.Error("DebugCondolences error", zap.Error(err))
		reportError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(snapshot)
}
