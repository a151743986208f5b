package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"youtube-digest/internal/store"
)

// ResultsHandler serves persisted artifacts and the stored-result listing.
type ResultsHandler struct {
	store *store.Store
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{
		store: st,
	}
}

// HandleResult returns the persisted Result JSON for a video id.
func (h *ResultsHandler) HandleResult(c *fiber.Ctx) error {
	result, err := h.store.Load(c.Params("video_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"error": "Result not found",
				"code":  "ERR_NOT_FOUND",
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleView serves the rendered HTML report for a video id.
func (h *ResultsHandler) HandleView(c *fiber.Ctx) error {
	path, err := h.store.ReportPath(c.Params("video_id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Result not found",
			"code":  "ERR_NOT_FOUND",
		})
	}
	return c.SendFile(path)
}

// HandleList returns the stored-result projections, newest first.
func (h *ResultsHandler) HandleList(c *fiber.Ctx) error {
	entries, err := h.store.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}
