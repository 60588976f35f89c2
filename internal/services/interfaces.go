package services

import (
	"context"
	"time"

	"github.com/lumenstudio/booking-api/internal/models"
)

// AppointmentIntake forwards booking requests to the intake webhook
type AppointmentIntake interface {
	SubmitAppointment(ctx context.Context, payload models.BookingPayload) ([]models.Message, error)
}

// AppointmentReader loads the month's appointments
type AppointmentReader interface {
	MonthAppointments(ctx context.Context) ([]models.Appointment, error)
}

// CaptchaVerifier checks a reCAPTCHA response token
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// CalendarInvalidator is told when a booking went through so cached months can be refreshed
type CalendarInvalidator interface {
	Invalidate()
}

// BookingServiceInterface defines the interface for booking submissions
type BookingServiceInterface interface {
	Submit(ctx context.Context, req *models.BookingRequest) (*models.Message, error)
}

// CalendarServiceInterface defines the interface for the appointment calendar
type CalendarServiceInterface interface {
	MonthEvents(ctx context.Context) []models.CalendarEvent
}

// AuthServiceInterface defines the Google sign-in pass-through
type AuthServiceInterface interface {
	SignInURL(state string) string
	CompleteSignIn(ctx context.Context, code string) (*models.Session, string, error)
	ValidateSession(token string) (*models.Session, error)
	SessionTTL() time.Duration
}

// Ensure services implement their interfaces
var _ BookingServiceInterface = (*BookingService)(nil)
var _ CalendarServiceInterface = (*CalendarService)(nil)
var _ AuthServiceInterface = (*AuthService)(nil)
