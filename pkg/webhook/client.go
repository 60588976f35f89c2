// Package webhook talks to the external automation service that receives
// booking requests and owns the appointment book.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/pkg/circuitbreaker"
	"github.com/lumenstudio/booking-api/pkg/httpclient"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	"github.com/lumenstudio/booking-api/pkg/tracing"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	serviceName     = "webhook"
	maxResponseSize = 1 << 20

	opSubmitAppointment = "submit_appointment"
	opMonthAppointments = "month_appointments"
)

// ErrUnexpectedStatus is returned when the intake webhook answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected webhook status")

// Config holds the webhook endpoints
type Config struct {
	IntakeURL            string
	MonthAppointmentsURL string
}

// Client calls the booking webhooks. Each endpoint has its own circuit breaker;
// there are no retries.
type Client struct {
	cfg          Config
	httpClient   httpclient.Client
	intakeCB     *gobreaker.CircuitBreaker
	appointments *gobreaker.CircuitBreaker
}

// NewClient creates a webhook client
func NewClient(cfg Config, httpClient httpclient.Client) *Client {
	return &Client{
		cfg:          cfg,
		httpClient:   httpClient,
		intakeCB:     circuitbreaker.NewCircuitBreaker(breakerConfig("webhook-intake")),
		appointments: circuitbreaker.NewCircuitBreaker(breakerConfig("webhook-month-appointments")),
	}
}

// breakerConfig does not count callers that went away as webhook failures
func breakerConfig(name string) circuitbreaker.Config {
	cfg := circuitbreaker.DefaultConfig(name)
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	return cfg
}

// SubmitAppointment posts a booking and returns the messages the webhook answered with
func (c *Client) SubmitAppointment(ctx context.Context, payload models.BookingPayload) ([]models.Message, error) {
	ctx, span := tracing.StartSpan(ctx, "webhook.SubmitAppointment",
		attribute.String("booking.shoot_type", payload.ShootType))
	defer span.End()

	start := time.Now()
	messages, err := circuitbreaker.Execute(c.intakeCB, func() ([]models.Message, error) {
		return c.postAppointment(ctx, payload)
	})
	c.observe(ctx, opSubmitAppointment, start, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit appointment failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("webhook.messages", len(messages)))
	return messages, nil
}

func (c *Client) postAppointment(ctx context.Context, payload models.BookingPayload) ([]models.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.IntakeURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("intake request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize)) //nolint:errcheck
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var messages []models.Message
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode intake response: %w", err)
	}

	return messages, nil
}

// MonthAppointments loads the current month's appointments. Like the page it
// serves, it does not look at the status code: a body that decodes as an
// appointment list is accepted.
func (c *Client) MonthAppointments(ctx context.Context) ([]models.Appointment, error) {
	ctx, span := tracing.StartSpan(ctx, "webhook.MonthAppointments")
	defer span.End()

	start := time.Now()
	appointments, err := circuitbreaker.Execute(c.appointments, func() ([]models.Appointment, error) {
		return c.getMonthAppointments(ctx)
	})
	c.observe(ctx, opMonthAppointments, start, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "month appointments failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("webhook.appointments", len(appointments)))
	return appointments, nil
}

func (c *Client) getMonthAppointments(ctx context.Context) ([]models.Appointment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.MonthAppointmentsURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build month appointments request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("month appointments request failed: %w", err)
	}
	defer resp.Body.Close()

	var appointments []models.Appointment
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&appointments); err != nil {
		return nil, fmt.Errorf("failed to decode month appointments (status %d): %w", resp.StatusCode, err)
	}

	return appointments, nil
}

// OpenBreakers lists the endpoints whose circuit breaker is currently open
func (c *Client) OpenBreakers() []string {
	open := []string{}
	for _, cb := range []*gobreaker.CircuitBreaker{c.intakeCB, c.appointments} {
		if circuitbreaker.IsCircuitOpen(cb) {
			open = append(open, cb.Name())
		}
	}
	return open
}

func (c *Client) observe(ctx context.Context, operation string, start time.Time, err error) {
	duration := metrics.MeasureDuration(start)
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.WebhookRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.WebhookRequestTotal.WithLabelValues(operation, status).Inc()

	if err != nil {
		logger.LogAPICall(ctx, serviceName, operation, status, duration, zap.Error(err))
		return
	}
	logger.LogAPICall(ctx, serviceName, operation, status, duration)
}
