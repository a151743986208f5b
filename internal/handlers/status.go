package handlers

import (
	"github.com/gofiber/fiber/v2"

	"youtube-digest/internal/jobs"
)

// StatusHandler reports job progress for polling clients.
type StatusHandler struct {
	registry *jobs.Registry
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(registry *jobs.Registry) *StatusHandler {
	return &StatusHandler{
		registry: registry,
	}
}

// Handle returns the current record for a job id.
func (h *StatusHandler) Handle(c *fiber.Ctx) error {
	record, err := h.registry.Get(c.Params("job_id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Job not found",
			"code":  "ERR_JOB_NOT_FOUND",
		})
	}
	return c.JSON(record)
}
