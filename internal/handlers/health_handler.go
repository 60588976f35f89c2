package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	openBreakers func() []string
}

// NewHealthHandler creates a health handler. openBreakers lists upstream
// circuit breakers that are currently open.
func NewHealthHandler(openBreakers func() []string) *HealthHandler {
	return &HealthHandler{
		openBreakers: openBreakers,
	}
}

// Healthcheck handles GET /api/healthcheck. The service stays up while the
// webhooks are down, so open breakers degrade the status without failing it.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if open := h.openBreakers(); len(open) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":        "degraded",
			"open_breakers": open,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
