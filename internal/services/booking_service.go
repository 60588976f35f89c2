package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenstudio/booking-api/internal/models"
	apperrors "github.com/lumenstudio/booking-api/pkg/errors"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	"go.uber.org/zap"
)

// User-facing alert texts
const (
	AlertMissingFields    = "Please fill in all required fields"
	AlertSubmissionFailed = "Error submitting appointment"
	AlertCaptchaFailed    = "Captcha verification failed"
)

var (
	ErrMissingRequiredFields = fmt.Errorf("missing required fields: %w", apperrors.ErrInvalidInput)
	ErrCaptchaFailed         = fmt.Errorf("captcha rejected: %w", apperrors.ErrInvalidInput)
	ErrSubmissionFailed      = apperrors.UpstreamError("intake webhook", nil)
	ErrEmptyResult           = errors.New("intake webhook returned no messages")
)

// BookingService validates booking requests and hands them to the intake webhook
type BookingService struct {
	intake      AppointmentIntake
	captcha     CaptchaVerifier
	invalidator CalendarInvalidator
}

// NewBookingService creates a booking service. captcha and invalidator may be nil.
func NewBookingService(intake AppointmentIntake, captcha CaptchaVerifier, invalidator CalendarInvalidator) *BookingService {
	return &BookingService{
		intake:      intake,
		captcha:     captcha,
		invalidator: invalidator,
	}
}

// Submit sends the booking and returns the first message of the webhook's answer.
// A request with an empty required field never reaches the network.
func (s *BookingService) Submit(ctx context.Context, req *models.BookingRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		metrics.BookingSubmissions.WithLabelValues("missing_fields").Inc()
		return nil, fmt.Errorf("%w: %w", ErrMissingRequiredFields, err)
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.RecaptchaToken); err != nil {
			metrics.BookingSubmissions.WithLabelValues("captcha_failed").Inc()
			logger.Warn("ReCAPTCHA verification failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrCaptchaFailed, err)
		}
	}

	messages, err := s.intake.SubmitAppointment(ctx, req.Payload())
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to submit appointment",
			zap.String("shoot_type", req.ShootType),
			zap.String("preferred_date", req.PreferredDate),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if len(messages) == 0 {
		metrics.BookingSubmissions.WithLabelValues("empty_result").Inc()
		logger.Error("Intake webhook answered with an empty message list")
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, ErrEmptyResult)
	}

	result := messages[0]
	metrics.BookingSubmissions.WithLabelValues("success").Inc()
	metrics.BookingResults.WithLabelValues(resultTypeLabel(result.Type), shootTypeLabel(req.ShootType)).Inc()

	logger.Info("Booking submitted",
		zap.String("result_type", string(result.Type)),
		zap.String("shoot_type", req.ShootType),
		zap.String("preferred_date", req.PreferredDate))

	if result.Type == models.MessageTypeSuccess && s.invalidator != nil {
		s.invalidator.Invalidate()
	}

	return &result, nil
}

// label helpers keep free-form input out of metric label values

func shootTypeLabel(v string) string {
	for _, opt := range models.ShootTypeOptions {
		if string(opt.Value) == v {
			return v
		}
	}
	return "other"
}

func resultTypeLabel(t models.MessageType) string {
	switch t {
	case models.MessageTypeError, models.MessageTypeValidationError, models.MessageTypeSuccess:
		return string(t)
	default:
		return "unknown"
	}
}
