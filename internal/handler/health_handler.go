package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// QueuePulse reports the last time the export queue worker polled for work.
type QueuePulse interface {
	LastPoll() time.Time
}

// HealthHandler handles health check endpoints. Readiness covers the two
// things this service cannot run without: the database and the export
// queue worker.
type HealthHandler struct {
	db         *sqlx.DB
	queue      QueuePulse
	queueStale time.Duration
}

// NewHealthHandler creates a new HealthHandler. queue may be nil when no
// worker runs in this process.
func NewHealthHandler(db *sqlx.DB, queue QueuePulse, queueStale time.Duration) *HealthHandler {
	return &HealthHandler{db: db, queue: queue, queueStale: queueStale}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}

	if h.queue != nil && h.queueStale > 0 {
		// A zero LastPoll means the worker has not ticked yet; that is
		// startup, not a stall.
		if lp := h.queue.LastPoll(); !lp.IsZero() && time.Since(lp) > h.queueStale {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "export queue worker stalled"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
