package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/internal/services"
)

// CalendarHandler serves the month's appointments as calendar events
type CalendarHandler struct {
	service services.CalendarServiceInterface
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(service services.CalendarServiceInterface) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// MonthEvents handles GET /api/v1/appointments/month. It always answers 200;
// an unavailable webhook yields an empty list.
func (h *CalendarHandler) MonthEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.MonthEvents(c.Request.Context()))
}
