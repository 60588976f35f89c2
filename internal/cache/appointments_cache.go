package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	appointmentsCacheName = "month_appointments"
	monthAppointmentsKey  = "appointments:month"
	cacheCleanupInterval  = time.Minute
)

// AppointmentSource is where appointments come from on a cache miss
type AppointmentSource interface {
	MonthAppointments(ctx context.Context) ([]models.Appointment, error)
}

// AppointmentsCache keeps the last successful month fetch for a short TTL.
// Failed fetches are never stored, so an outage is not pinned in the cache.
type AppointmentsCache struct {
	cache  *gocache.Cache
	source AppointmentSource
	ttl    time.Duration
}

// NewAppointmentsCache creates the cache. ttlSeconds of 0 turns caching off and
// every Get goes to the source.
func NewAppointmentsCache(source AppointmentSource, ttlSeconds int) *AppointmentsCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &AppointmentsCache{
		cache:  gocache.New(ttl, cacheCleanupInterval),
		source: source,
		ttl:    ttl,
	}
}

// Enabled reports whether results are kept between calls
func (c *AppointmentsCache) Enabled() bool {
	return c.ttl > 0
}

// MonthAppointments returns cached appointments or fetches them from the source
func (c *AppointmentsCache) MonthAppointments(ctx context.Context) ([]models.Appointment, error) {
	if !c.Enabled() {
		return c.source.MonthAppointments(ctx)
	}

	if data, found := c.cache.Get(monthAppointmentsKey); found {
		appointments, ok := data.([]models.Appointment)
		if ok {
			metrics.CacheHits.WithLabelValues(appointmentsCacheName).Inc()
			logger.Debug("Appointments cache hit", zap.Int("count", len(appointments)))
			return appointments, nil
		}
		logger.Error("Invalid appointments cache data type")
		c.cache.Delete(monthAppointmentsKey)
	}

	metrics.CacheMisses.WithLabelValues(appointmentsCacheName).Inc()

	appointments, err := c.source.MonthAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments cache refresh: %w", err)
	}

	c.cache.Set(monthAppointmentsKey, appointments, c.ttl)
	logger.Debug("Appointments cache refreshed", zap.Int("count", len(appointments)))

	return appointments, nil
}

// Invalidate drops the cached month so the next read goes to the source
func (c *AppointmentsCache) Invalidate() {
	c.cache.Delete(monthAppointmentsKey)
}
