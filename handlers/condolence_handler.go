package handlers

import (
	"errors"
	"strings"

	"ormakal.in/configs/configslog"
	"ormakal.in/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CondolenceHandler serves the condolence JSON API.
type CondolenceHandler struct {
	condolenceService services.ICondolenceService
}

func NewCondolenceHandler(condolenceService services.ICondolenceService) *CondolenceHandler {
	return &CondolenceHandler{condolenceService: condolenceService}
}

type fieldErrorResponse struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Submit accepts a JSON or form-encoded condolence.
func (h *CondolenceHandler) Submit(c *fiber.Ctx) error {
	var input services.SubmitCondolenceInput
	if err := c.BodyParser(&input); err != nil {
		configslog.Log.Warn("Submit: body could not be parsed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	// Form values point into the request buffer, which is reused after this handler returns.
	input.Name = strings.Clone(input.Name)
	input.Email = strings.Clone(input.Email)
	input.Message = strings.Clone(input.Message)

	confirmation, err := h.condolenceService.Submit(c.UserContext(), input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			details := make([]fieldErrorResponse, 0, len(verr.Fields))
			for _, field := range verr.FieldNames() {
				details = append(details, fieldErrorResponse{Field: field, Msg: verr.Fields[field]})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   verr.Error(),
				"details": details,
			})
		case errors.Is(err, services.ErrNoActiveObituary):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active obituary found"})
		default:
			configslog.Log.Error("Submit: condolence submission failed", zap.Error(err))
			reportError(c, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unable to submit condolence"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Condolence submitted successfully",
		"id":      confirmation.ID,
	})
}

// Approve marks the condolence in :id approved.
func (h *CondolenceHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.condolenceService.Approve(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrCondolenceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Condolence not found"})
		}
		configslog.Log.Error("Approve: condolence approval failed", zap.String("id", id), zap.Error(err))
		reportError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unable to approve condolence"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Condolence approved"})
}
