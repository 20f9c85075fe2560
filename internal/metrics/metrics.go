package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "microstartup", Name: "generations_total", Help: "Idea generation attempts by outcome."},
		[]string{"status"},
	)
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "microstartup",
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting on the generation provider.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
	IdeaOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "microstartup", Name: "idea_operations_total", Help: "Persistence operations on startup ideas by operation and outcome."},
		[]string{"operation", "status"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "microstartup", Name: "rate_limit_rejected_total", Help: "Requests rejected by a rate limiter."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Generations)
	reg.MustRegister(GenerationDuration)
	reg.MustRegister(IdeaOperations)
	reg.MustRegister(RateLimitRejected)
}
