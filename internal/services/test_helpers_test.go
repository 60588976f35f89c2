package services_test

import (
	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func validBookingRequest() *models.BookingRequest {
	return &models.BookingRequest{
		Name:               "Ada Lovelace",
		Email:              "ada@example.com",
		Phone:              "+44 20 7946 0000",
		ShootType:          string(models.ShootTypePortrait),
		PreferredDate:      "2024-05-01",
		PreferredStartTime: "10:00",
		PreferredEndTime:   "11:00",
		Notes:              "Natural light please",
	}
}
