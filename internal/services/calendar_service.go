package services

import (
	"context"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	"go.uber.org/zap"
)

// CalendarService turns the month's appointments into calendar events
type CalendarService struct {
	source AppointmentReader
}

// NewCalendarService creates a new calendar service
func NewCalendarService(source AppointmentReader) *CalendarService {
	return &CalendarService{source: source}
}

// MonthEvents never fails: a failed load is logged and yields an empty calendar.
func (s *CalendarService) MonthEvents(ctx context.Context) []models.CalendarEvent {
	appointments, err := s.source.MonthAppointments(ctx)
	if err != nil {
		logger.Warn("Failed to load month appointments, showing empty calendar", zap.Error(err))
		metrics.CalendarEventsServed.Observe(0)
		return []models.CalendarEvent{}
	}

	events := models.EventsFromAppointments(appointments)
	metrics.CalendarEventsServed.Observe(float64(len(events)))
	return events
}

// SelectEvent returns the popover for the event at index, if there is one
func SelectEvent(events []models.CalendarEvent, index int) (models.Popover, bool) {
	if index < 0 || index >= len(events) {
		return models.Popover{}, false
	}
	return models.NewPopover(events[index]), true
}
