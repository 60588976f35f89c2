package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/pkg/circuitbreaker"
	"github.com/lumenstudio/booking-api/pkg/httpclient"
	"github.com/lumenstudio/booking-api/pkg/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(server *httptest.Server) *webhook.Client {
	return webhook.NewClient(webhook.Config{
		IntakeURL:            server.URL + "/webhook-test/appointment",
		MonthAppointmentsURL: server.URL + "/webhook/month-appointments",
	}, httpclient.NewStandardClient(5*time.Second))
}

func TestSubmitAppointment_PostsPayloadVerbatim(t *testing.T) {
	var received models.BookingPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webhook-test/appointment", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"type":"success","message":"See you on May 1st"},{"type":"error","message":"ignored"}]`))
	}))
	defer server.Close()

	payload := models.BookingPayload{
		Name:               "Jane Doe",
		Email:              "jane@example.com",
		Phone:              "+63 912 345 6789",
		ShootType:          "wedding",
		PreferredDate:      "2024-05-01",
		PreferredStartTime: "10:00",
		PreferredEndTime:   "11:00",
		Notes:              "Golden hour please",
	}

	messages, err := newClient(server).SubmitAppointment(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, payload, received)
	require.Len(t, messages, 2)
	assert.Equal(t, models.Message{Type: models.MessageTypeSuccess, Message: "See you on May 1st"}, messages[0])
}

func TestSubmitAppointment_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`[{"type":"success","message":"should not be read"}]`))
		}))

		messages, err := newClient(server).SubmitAppointment(context.Background(), models.BookingPayload{})

		assert.ErrorIs(t, err, webhook.ErrUnexpectedStatus)
		assert.Nil(t, messages)
		server.Close()
	}
}

func TestSubmitAppointment_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`Workflow was started`))
	}))
	defer server.Close()

	_, err := newClient(server).SubmitAppointment(context.Background(), models.BookingPayload{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode intake response")
}

func TestSubmitAppointment_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newClient(server)
	for i := 0; i < 5; i++ {
		_, err := client.SubmitAppointment(context.Background(), models.BookingPayload{})
		require.Error(t, err)
	}

	_, err := client.SubmitAppointment(context.Background(), models.BookingPayload{})
	assert.True(t, circuitbreaker.IsRejected(err))
	assert.Equal(t, int32(5), calls.Load(), "open breaker must not reach the webhook")
	assert.Equal(t, []string{"webhook-intake"}, client.OpenBreakers())
}

func TestMonthAppointments_Decodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/webhook/month-appointments", r.URL.Path)
		_, _ = w.Write([]byte(`[{"preferredDate":"2024-05-01","preferredStartTime":"10:00","preferredEndTime":"11:00"}]`))
	}))
	defer server.Close()

	appointments, err := newClient(server).MonthAppointments(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Appointment{{
		PreferredDate:      "2024-05-01",
		PreferredStartTime: "10:00",
		PreferredEndTime:   "11:00",
	}}, appointments)
}

func TestMonthAppointments_IgnoresStatusWhenBodyDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	appointments, err := newClient(server).MonthAppointments(context.Background())

	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestMonthAppointments_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newClient(server)
	server.Close()

	appointments, err := client.MonthAppointments(context.Background())

	assert.Error(t, err)
	assert.Nil(t, appointments)
}
