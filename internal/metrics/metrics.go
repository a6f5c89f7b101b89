package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "resume_mocker"

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	roastAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roast_attempts_total",
			Help:      "Number of roast attempts by outcome",
		},
		[]string{"outcome", "file_format", "error_code"},
	)

	roastDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "roast_duration_seconds",
			Help:      "Roast attempt duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"outcome", "provider"},
	)

	roastInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roast_in_flight",
			Help:      "Roast attempts currently in progress",
		},
	)
)

func HttpRequestsTotal(method, path, code string) {
	httpRequestsTotal.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"code":   code,
	}).Inc()
}

func HttpRequestDuration(method, path string, duration time.Duration) {
	httpRequestDuration.With(prometheus.Labels{
		"method": method,
		"path":   path,
	}).Observe(duration.Seconds())
}

func RoastAttemptsTotal(outcome, fileFormat, errorCode string) {
	roastAttemptsTotal.With(prometheus.Labels{
		"outcome":     outcome,
		"file_format": fileFormat,
		"error_code":  errorCode,
	}).Inc()
}

func RoastDuration(outcome, provider string, duration time.Duration) {
	roastDuration.With(prometheus.Labels{
		"outcome":  outcome,
		"provider": provider,
	}).Observe(duration.Seconds())
}

func RoastStarted() {
	roastInFlight.Inc()
}

func RoastFinished() {
	roastInFlight.Dec()
}

// Middleware records request counts and latency. Paths are taken from the
// matched route so that ids do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}

		HttpRequestsTotal(c.Method(), path, strconv.Itoa(status))
		HttpRequestDuration(c.Method(), path, time.Since(start))

		return err
	}
}
