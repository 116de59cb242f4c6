package handlers

import (
	"ormakal.in/configs/configslog"
	"ormakal.in/pkg/gallery"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const debugResourceLimit = 50

// GalleryDebugHandler shows what the image host holds. Mounted only when APP_DEBUG is set.
type GalleryDebugHandler struct {
	inspector gallery.Inspector
}

// NewGalleryDebugHandler accepts a nil inspector when the image host is not configured.
func NewGalleryDebugHandler(inspector gallery.Inspector) *GalleryDebugHandler {
	return &GalleryDebugHandler{inspector: inspector}
}

func (h *GalleryDebugHandler) notConfigured(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Image hosting is not configured"})
}

func (h *GalleryDebugHandler) Folders(c *fiber.Ctx) error {
	if h.inspector == nil {
		return h.notConfigured(c)
	}
	folders, err := h.inspector.RootFolders(c.UserContext())
	if err != nil {
		configslog.Log.Error("Folders: image host request failed", zap.Error(err))
		reportError(c, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"folders": folders})
}

func (h *GalleryDebugHandler) Resources(c *fiber.Ctx) error {
	if h.inspector == nil {
		return h.notConfigured(c)
	}
	ids, err := h.inspector.UploadedIDs(c.UserContext(), debugResourceLimit)
	if err != nil {
		configslog.Log.Error("Resources: image host request failed", zap.Error(err))
		reportError(c, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"resources": ids})
}
