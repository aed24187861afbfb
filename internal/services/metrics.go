package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// queryDur records query engine latency per entity.
	queryDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_query_duration_seconds",
			Help:    "Duration of filter/sort/paginate passes in seconds.",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		},
		[]string{"entity"},
	)

	// queryRows records how many records survived the filter.
	queryRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_query_matched_records",
			Help:    "Number of records matching a list query.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"entity"},
	)

	// simOutcomes counts simulated backend calls by operation and outcome.
	simOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_simulated_calls_total",
			Help: "Simulated backend calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(queryDur, queryRows, simOutcomes)
}

func observeQuery(entity string, start time.Time, matched int) {
	queryDur.WithLabelValues(entity).Observe(time.Since(start).Seconds())
	queryRows.WithLabelValues(entity).Observe(float64(matched))
}

func observeSim(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	simOutcomes.WithLabelValues(op, outcome).Inc()
}
