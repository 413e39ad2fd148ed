package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Aggregations       *prometheus.CounterVec
	APIErrors          *prometheus.CounterVec
	RequestSeconds     *prometheus.HistogramVec
	EnrichmentFailures prometheus.Counter
	ActiveWorkers      prometheus.Gauge
	HTTPRequests       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Aggregations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "overhead_aggregations_total",
			Help: "Total number of flight aggregations by outcome.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "overhead_provider_api_errors_total",
			Help: "Total number of errors received from upstream provider APIs.",
		}, []string{"provider"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "overhead_provider_request_duration_seconds",
			Help:    "Duration of requests to upstream provider APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		EnrichmentFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overhead_weather_enrichment_failures_total",
			Help: "Total number of flights returned without weather because the lookup failed.",
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "overhead_active_workers",
			Help: "Current number of workers performing weather lookups.",
		}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "overhead_http_requests_total",
			Help: "Total number of HTTP requests served by status code.",
		}, []string{"code"}),
	}
}
