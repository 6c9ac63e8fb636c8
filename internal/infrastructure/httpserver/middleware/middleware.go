package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	Logging   *LoggingMiddleware
	RateLimit *RateLimitMiddleware
	Metrics   *MetricsMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware.
// A nil rateLimiterService leaves RateLimit nil.
func NewMiddlewareCollection(
	rateLimiterService ports.RateLimiterService,
	logger *logrus.Logger,
	requestsTotal *prometheus.CounterVec,
	requestDuration *prometheus.HistogramVec,
) *MiddlewareCollection {
	mc := &MiddlewareCollection{
		Logging: NewLoggingMiddleware(logger),
		Metrics: NewMetricsMiddleware(requestsTotal, requestDuration),
	}
	if rateLimiterService != nil {
		mc.RateLimit = NewRateLimitMiddleware(rateLimiterService, logger)
	}
	return mc
}
