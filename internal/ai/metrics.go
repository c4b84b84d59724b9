package ai

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	advisoryRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_advisory_requests_total",
			Help: "Total successful AI advisory completions",
		},
	)
	advisoryFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_advisory_fallback_total",
			Help: "Total advisory calls recovered via the keyword heuristic",
		},
	)
)

func init() {
	prometheus.MustRegister(advisoryRequests)
	prometheus.MustRegister(advisoryFallbacks)
}
