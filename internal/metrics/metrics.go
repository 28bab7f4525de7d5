// Package metrics exposes Prometheus counters for store mutations and
// storage writes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kikehq_mutations_total",
		Help: "State-changing operations applied to the store, by operation.",
	}, []string{"op"})

	PersistWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kikehq_persist_writes_total",
		Help: "Successful full rewrites of a storage key.",
	}, []string{"key"})

	PersistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kikehq_persist_failures_total",
		Help: "Storage writes that failed and were swallowed.",
	}, []string{"key"})

	ProgressEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kikehq_progress_events",
		Help: "Entries currently held in the progress log.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
