package handlers

import (
	"context"
	"time"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of BookingServiceInterface
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Submit(ctx context.Context, req *models.BookingRequest) (*models.Message, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// MockCalendarService is a mock implementation of CalendarServiceInterface
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) MonthEvents(ctx context.Context) []models.CalendarEvent {
	args := m.Called(ctx)
	return args.Get(0).([]models.CalendarEvent)
}

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignInURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthService) CompleteSignIn(ctx context.Context, code string) (*models.Session, string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.Session), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateSession(token string) (*models.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthService) SessionTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
