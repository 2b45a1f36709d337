package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the API's Prometheus collectors.
type Metrics struct {
	classifications *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	insights        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// MustNewMetrics registers the collectors with reg, panicking on a
// duplicate registration. A nil reg means the default registerer.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	classifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mbti_mirror",
			Name:      "classifications_total",
			Help:      "Classifications computed, by resulting type code.",
		},
		[]string{"type_code"},
	)
	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mbti_mirror",
			Name:      "submissions_total",
			Help:      "Result submissions, by outcome.",
		},
		[]string{"outcome"},
	)
	insights := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mbti_mirror",
			Name:      "insight_requests_total",
			Help:      "Exemplar insight requests, by outcome.",
		},
		[]string{"outcome"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mbti_mirror",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)

	reg.MustRegister(classifications, submissions, insights, requestDuration)

	return &Metrics{
		classifications: classifications,
		submissions:     submissions,
		insights:        insights,
		requestDuration: requestDuration,
	}
}

func (m *Metrics) classified(code string) {
	m.classifications.WithLabelValues(code).Inc()
}

func (m *Metrics) submitted(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) insight(outcome string) {
	m.insights.WithLabelValues(outcome).Inc()
}
