package handlers

import (
	"github.com/gofiber/fiber/v2"

	"youtube-digest/internal/jobs"
)

// TranslateHandler accepts new translation jobs.
type TranslateHandler struct {
	registry *jobs.Registry
}

// NewTranslateHandler creates a new translate handler.
func NewTranslateHandler(registry *jobs.Registry) *TranslateHandler {
	return &TranslateHandler{
		registry: registry,
	}
}

// TranslateRequest represents the request body.
type TranslateRequest struct {
	URL string `json:"url"`
}

// Handle submits the URL as a background job and returns its id
// immediately.
func (h *TranslateHandler) Handle(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
	}

	if req.URL == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "URL is required",
			"code":  "ERR_NO_URL",
		})
	}

	jobID := h.registry.Submit(req.URL)
	return c.JSON(fiber.Map{
		"job_id": jobID,
	})
}
