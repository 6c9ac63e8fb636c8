package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/middleware"
	tmocks "github.com/avatarctic/film-catalog-api/test/mocks"
)

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_SetsHeadersAndKeysOnClientIP(t *testing.T) {
	var seen string
	rl := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		seen = clientKey
		return true, 7, 10, time.Unix(1700000000, 0), nil
	}}
	e := echo.New()
	e.Use(middleware.NewRateLimitMiddleware(rl, logrus.New()).Handler())
	e.GET("/api/v1/films", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, "/api/v1/films")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "192.0.2.10", seen)
	require.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "7", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "1700000000", rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_RejectsWith429(t *testing.T) {
	rl := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		return false, 0, 10, time.Now(), nil
	}}
	e := echo.New()
	e.Use(middleware.NewRateLimitMiddleware(rl, logrus.New()).Handler())
	e.GET("/api/v1/films", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	require.Equal(t, http.StatusTooManyRequests, serve(e, "/api/v1/films").Code)
	require.Equal(t, http.StatusOK, serve(e, "/health").Code, "probes are not limited")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rl := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		return true, 20, 10, time.Now(), errors.New("redis down")
	}}
	e := echo.New()
	e.Use(middleware.NewRateLimitMiddleware(rl, logrus.New()).Handler())
	e.GET("/api/v1/films", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	require.Equal(t, http.StatusOK, serve(e, "/api/v1/films").Code)
}

func TestMetrics_RecordsErrorStatus(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_requests_total"}, []string{"method", "endpoint", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_request_duration_seconds"}, []string{"method", "endpoint"})
	e := echo.New()
	e.Use(middleware.NewMetricsMiddleware(total, duration).CollectHTTPMetrics())
	e.GET("/api/v1/films/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "film not found")
		}
		return c.NoContent(http.StatusOK)
	})

	serve(e, "/api/v1/films/tt1")
	serve(e, "/api/v1/films/missing")
	serve(e, "/api/v1/films/missing")

	require.Equal(t, 1.0, testutil.ToFloat64(total.WithLabelValues("GET", "/api/v1/films/:id", "200")))
	require.Equal(t, 2.0, testutil.ToFloat64(total.WithLabelValues("GET", "/api/v1/films/:id", "404")))
}

func TestCollection_NilLimiterDisablesRateLimit(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "c_total"}, []string{"method", "endpoint", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "c_seconds"}, []string{"method", "endpoint"})

	mc := middleware.NewMiddlewareCollection(nil, logrus.New(), total, duration)
	require.Nil(t, mc.RateLimit)
	require.NotNil(t, mc.Logging)
	require.NotNil(t, mc.Metrics)
}
