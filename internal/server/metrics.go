package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the two flows that touch external services.
type Metrics struct {
	ClassifyTotal    *prometheus.CounterVec
	ClassifyDuration prometheus.Histogram
	RelayTotal       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ClassifyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "artyatra_classify_requests_total",
			Help: "Classification requests by outcome.",
		}, []string{"outcome"}),
		ClassifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "artyatra_classify_duration_seconds",
			Help:    "Wall time of the AI classification call.",
			Buckets: prometheus.DefBuckets,
		}),
		RelayTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "artyatra_swecha_relay_total",
			Help: "Swecha relay calls by phase and outcome.",
		}, []string{"phase", "outcome"}),
	}
}
