package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/internal/middleware"
	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/internal/services"
	"github.com/lumenstudio/booking-api/internal/web"
)

// PageOptions are the page features that depend on configuration
type PageOptions struct {
	AuthEnabled      bool
	RecaptchaSiteKey string
}

// PageHandler renders the booking page
type PageHandler struct {
	booking  services.BookingServiceInterface
	calendar services.CalendarServiceInterface
	opts     PageOptions
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(booking services.BookingServiceInterface, calendar services.CalendarServiceInterface, opts PageOptions) *PageHandler {
	return &PageHandler{
		booking:  booking,
		calendar: calendar,
		opts:     opts,
	}
}

// Index handles GET /. ?event=N opens the details popover of the N-th event.
func (h *PageHandler) Index(c *gin.Context) {
	data := h.pageData(c, models.BookingRequest{})

	if raw := c.Query("event"); raw != "" {
		if index, err := strconv.Atoi(raw); err == nil {
			if popover, ok := services.SelectEvent(data.Events, index); ok {
				data.Popover = &popover
			}
		}
	}

	c.HTML(http.StatusOK, web.IndexTemplate, data)
}

// SubmitBooking handles POST /booking from the page's form
func (h *PageHandler) SubmitBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBind(&req); err != nil && !isValidationError(err) {
		attachError(c, err)
		data := h.pageData(c, req)
		data.Alert = services.AlertSubmissionFailed
		c.HTML(http.StatusBadRequest, web.IndexTemplate, data)
		return
	}

	result, err := h.booking.Submit(c.Request.Context(), &req)
	if err != nil {
		attachError(c, err)
		status, alert := bookingErrorResponse(err)
		data := h.pageData(c, req)
		data.Alert = alert
		c.HTML(status, web.IndexTemplate, data)
		return
	}

	// A validation_error leaves the form filled in so it can be corrected
	form := models.BookingRequest{}
	if result.Type != models.MessageTypeSuccess {
		form = req
	}
	form.RecaptchaToken = ""

	data := h.pageData(c, form)
	data.View = models.NewResultView(result, false)
	c.HTML(http.StatusOK, web.IndexTemplate, data)
}

func (h *PageHandler) pageData(c *gin.Context, form models.BookingRequest) web.PageData {
	data := web.PageData{
		Form:             form,
		ShootTypes:       models.ShootTypeOptions,
		Events:           h.calendar.MonthEvents(c.Request.Context()),
		AuthEnabled:      h.opts.AuthEnabled,
		RecaptchaSiteKey: h.opts.RecaptchaSiteKey,
	}

	if session, err := middleware.GetSession(c); err == nil {
		data.Session = session
	} else if !errors.Is(err, middleware.ErrSessionNotFound) {
		attachError(c, err)
	}

	return data
}
