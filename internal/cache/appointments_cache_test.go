package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) MonthAppointments(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

var may1st = []models.Appointment{{PreferredDate: "2024-05-01", PreferredStartTime: "10:00", PreferredEndTime: "11:00"}}

func TestAppointmentsCache_HitAfterMiss(t *testing.T) {
	source := new(mockSource)
	source.On("MonthAppointments", mock.Anything).Return(may1st, nil).Once()
	c := NewAppointmentsCache(source, 60)

	first, err := c.MonthAppointments(context.Background())
	require.NoError(t, err)
	second, err := c.MonthAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, may1st, first)
	assert.Equal(t, may1st, second)
	source.AssertNumberOfCalls(t, "MonthAppointments", 1)
}

func TestAppointmentsCache_FailuresAreNotCached(t *testing.T) {
	source := new(mockSource)
	source.On("MonthAppointments", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	source.On("MonthAppointments", mock.Anything).Return(may1st, nil).Once()
	c := NewAppointmentsCache(source, 60)

	_, err := c.MonthAppointments(context.Background())
	require.Error(t, err)

	got, err := c.MonthAppointments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, may1st, got)
}

func TestAppointmentsCache_Disabled(t *testing.T) {
	source := new(mockSource)
	source.On("MonthAppointments", mock.Anything).Return(may1st, nil).Twice()
	c := NewAppointmentsCache(source, 0)

	assert.False(t, c.Enabled())
	_, _ = c.MonthAppointments(context.Background())
	_, _ = c.MonthAppointments(context.Background())

	source.AssertNumberOfCalls(t, "MonthAppointments", 2)
}

func TestAppointmentsCache_Invalidate(t *testing.T) {
	source := new(mockSource)
	source.On("MonthAppointments", mock.Anything).Return(may1st, nil).Twice()
	c := NewAppointmentsCache(source, 60)

	_, _ = c.MonthAppointments(context.Background())
	c.Invalidate()
	_, _ = c.MonthAppointments(context.Background())

	source.AssertNumberOfCalls(t, "MonthAppointments", 2)
}
