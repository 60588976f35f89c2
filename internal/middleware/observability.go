package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	"go.uber.org/zap"
)

const unmatchedRoute = "unmatched"

// redactedQueryParams never reach the request log. code and state come from the
// Google sign-in callback.
var redactedQueryParams = map[string]struct{}{
	"token": {}, "password": {}, "secret": {}, "key": {}, "auth": {},
	"api_key": {}, "apikey": {}, "code": {}, "state": {},
}

// ObservabilityMiddleware records request metrics and writes one log line per request
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// Route template, not the raw path, keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		status := c.Writer.Status()
		duration := metrics.MeasureDuration(start)
		statusLabel := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, statusLabel).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, statusLabel).Inc()

		fields := requestFields(c)
		if status >= 400 {
			fields = append(fields, failureFields(c)...)
		}

		logger.LogHTTPRequest(c.Request.Context(), method, c.Request.URL.Path, status, duration, fields...)
	}
}

func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("response_size", c.Writer.Size()),
	}
	if id := GetRequestID(c); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return fields
}

// failureFields adds what helps trace a failed request: query params and the errors handlers attached
func failureFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if query := sanitizedQuery(c); len(query) > 0 {
		fields = append(fields, zap.Any("query_params", query))
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}

	return fields
}

func sanitizedQuery(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	out := make(map[string]string, len(query))
	for name, values := range query {
		if _, redacted := redactedQueryParams[strings.ToLower(name)]; redacted || len(values) == 0 {
			continue
		}
		out[name] = values[0]
	}
	return out
}
