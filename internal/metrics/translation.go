package metrics

import "github.com/prometheus/client_golang/prometheus"

// Translation Prometheus metrics.
var (
	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memodex",
			Name:      "translation_requests_total",
			Help:      "Total number of translation API requests",
		},
		[]string{"operation", "status"},
	)

	TranslationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memodex",
			Name:      "translation_request_duration_seconds",
			Help:      "Translation API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	TranslationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memodex",
			Name:      "translation_errors_total",
			Help:      "Total translation API errors",
		},
		[]string{"operation", "error_type"},
	)

	TranslationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memodex",
			Name:      "translation_cache_total",
			Help:      "Translation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var trMetricsRegistered bool

// RegisterTranslationMetrics registers Prometheus translation metrics. Must be called once from main.
func RegisterTranslationMetrics() {
	if trMetricsRegistered {
		return
	}
	prometheus.MustRegister(TranslationRequestsTotal)
	prometheus.MustRegister(TranslationRequestDuration)
	prometheus.MustRegister(TranslationErrorsTotal)
	prometheus.MustRegister(TranslationCacheTotal)
	trMetricsRegistered = true
}
