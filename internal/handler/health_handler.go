package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invonest/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	hsnRepo port.HSNRepository
}

// NewHealthHandler creates a new HealthHandler. hsnRepo may be nil when the
// server runs without a database.
func NewHealthHandler(hsnRepo port.HSNRepository) *HealthHandler {
	return &HealthHandler{hsnRepo: hsnRepo}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.hsnRepo != nil {
		if err := h.hsnRepo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
