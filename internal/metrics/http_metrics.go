package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics collects per-route request metrics for one service
type HTTPMetrics struct {
	ServiceName string

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	statusOK       *prometheus.CounterVec
	statusClient   *prometheus.CounterVec
	statusServer   *prometheus.CounterVec
	statusCategory *prometheus.CounterVec
}

// NewHTTPMetrics creates the collectors and registers them on reg
func NewHTTPMetrics(serviceName string, reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		ServiceName: serviceName,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		statusOK: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_2xx_total",
				Help: "Total number of 2xx (success) responses",
			},
			[]string{"service"},
		),
		statusClient: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_4xx_total",
				Help: "Total number of 4xx (client error) responses",
			},
			[]string{"service"},
		),
		statusServer: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_5xx_total",
				Help: "Total number of 5xx (server error) responses",
			},
			[]string{"service"},
		),
		statusCategory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"service", "category", "method", "path"},
		),
	}

	reg.MustRegister(m.requests, m.duration, m.statusOK, m.statusClient, m.statusServer, m.statusCategory)
	return m
}

func (m *HTTPMetrics) incrementStatusCounter(status int, method, path string) {
	var category string
	switch {
	case status >= 200 && status < 300:
		m.statusOK.WithLabelValues(m.ServiceName).Inc()
		category = "2xx"
	case status >= 400 && status < 500:
		m.statusClient.WithLabelValues(m.ServiceName).Inc()
		category = "4xx"
	case status >= 500 && status < 600:
		m.statusServer.WithLabelValues(m.ServiceName).Inc()
		category = "5xx"
	}

	if category != "" {
		m.statusCategory.WithLabelValues(m.ServiceName, category, method, path).Inc()
	}
}

// Middleware records request count, status category and latency.
// The route pattern (c.Path) is used as the path label to keep cardinality bounded.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.requests.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
			m.incrementStatusCounter(status, method, path)
			m.duration.WithLabelValues(m.ServiceName, method, path, statusStr).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

// Handler exposes the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
