package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gemtrove/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db    *sqlx.DB
	media service.MediaService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, media service.MediaService) *HealthHandler {
	return &HealthHandler{db: db, media: media}
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

	media := h.media.HealthCheck(c.Request.Context())
	status := http.StatusOK
	if media.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": media.Status, "media": media})
}
