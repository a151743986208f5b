package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/websocket/v2"

	"youtube-digest/internal/jobs"
)

// ProgressHandler streams job status updates over a WebSocket until the job
// reaches a terminal state, sparing clients the polling loop.
type ProgressHandler struct {
	registry *jobs.Registry
	interval time.Duration
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(registry *jobs.Registry) *ProgressHandler {
	return &ProgressHandler{
		registry: registry,
		interval: time.Second,
	}
}

// Handle pushes the job record once per interval and closes after the
// terminal update.
func (h *ProgressHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	jobID := c.Params("job_id")
	log.Printf("WebSocket progress feed opened for job %s", jobID)

	for {
		record, err := h.registry.Get(jobID)
		if err != nil {
			c.WriteMessage(websocket.TextMessage, []byte(`{"error":"Job not found","code":"ERR_JOB_NOT_FOUND"}`))
			return
		}

		payload, err := json.Marshal(record)
		if err != nil {
			log.Printf("Failed to marshal job record %s: %v", jobID, err)
			return
		}
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}

		if record.Terminal() {
			return
		}
		time.Sleep(h.interval)
	}
}
