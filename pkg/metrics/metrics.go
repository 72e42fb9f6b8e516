package metrics

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestCounter counts the total number of HTTP requests.
	HTTPRequestCounter *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request latencies.
	HTTPRequestDuration *prometheus.HistogramVec

	// AppInfo exposes static information about the application.
	AppInfo *prometheus.GaugeVec

	// AppVersion is taken from the APP_VERSION environment variable.
	AppVersion = "unknown"
)

func init() {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		AppVersion = envVersion
	}

	HTTPRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodyme_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodyme_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moodyme_app_info",
			Help: "Information about the MoodyMe backend.",
		},
		[]string{"version"},
	)
	AppInfo.With(prometheus.Labels{"version": AppVersion}).Set(1)
}
