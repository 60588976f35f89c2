package services_test

import (
	"context"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAppointmentIntake is a mock implementation of AppointmentIntake
type MockAppointmentIntake struct {
	mock.Mock
}

func (m *MockAppointmentIntake) SubmitAppointment(ctx context.Context, payload models.BookingPayload) ([]models.Message, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockAppointmentReader is a mock implementation of AppointmentReader
type MockAppointmentReader struct {
	mock.Mock
}

func (m *MockAppointmentReader) MonthAppointments(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

// MockCaptchaVerifier is a mock implementation of CaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockCalendarInvalidator is a mock implementation of CalendarInvalidator
type MockCalendarInvalidator struct {
	mock.Mock
}

func (m *MockCalendarInvalidator) Invalidate() {
	m.Called()
}
