package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/internal/services"
)

// BookingHandler serves the JSON booking API
type BookingHandler struct {
	service services.BookingServiceInterface
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(service services.BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

// SubmitAppointment handles POST /api/v1/appointments
func (h *BookingHandler) SubmitAppointment(c *gin.Context) {
	var req models.BookingRequest
	// Binding validation errors are left to the service, which reports missing fields uniformly
	if err := c.ShouldBindJSON(&req); err != nil && !isValidationError(err) {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		status, message := bookingErrorResponse(err)
		if details := ParseValidationErrors(err); len(details) > 0 {
			respondErrorWithDetails(c, status, message, details, err)
			return
		}
		respondError(c, status, message, err)
		return
	}

	c.JSON(http.StatusOK, models.BookingResponse{
		Result: result,
		View:   models.NewResultView(result, false),
	})
}

// bookingErrorResponse maps a Submit error to a status code and the alert shown to the user
func bookingErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingRequiredFields):
		return http.StatusBadRequest, services.AlertMissingFields
	case errors.Is(err, services.ErrCaptchaFailed):
		return http.StatusBadRequest, services.AlertCaptchaFailed
	case errors.Is(err, services.ErrSubmissionFailed):
		return http.StatusBadGateway, services.AlertSubmissionFailed
	default:
		return http.StatusInternalServerError, services.AlertSubmissionFailed
	}
}
