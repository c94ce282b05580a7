// Package metrics holds the registry's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PersonsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_persons_created_total",
		Help: "Persons stored through CreatePerson.",
	})

	PersonsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_persons_updated_total",
		Help: "Successful record rewrites.",
	})

	// RejectedOperations counts refused operations by operation and reason.
	RejectedOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dr_rejected_operations_total",
		Help: "Operations refused by validation or update rules.",
	}, []string{"operation", "reason"})

	DemeritsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_demerits_recorded_total",
		Help: "Offenses accepted onto a ledger.",
	})

	DemeritPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dr_demerit_points",
		Help:    "Points per accepted offense.",
		Buckets: prometheus.LinearBuckets(1, 1, 6),
	})

	// Suspensions counts ledgers that move from not suspended to suspended.
	Suspensions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_suspensions_total",
		Help: "Ledgers that crossed their suspension threshold.",
	})

	StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dr_store_failures_total",
		Help: "Record store I/O failures by operation.",
	}, []string{"operation"})

	SessionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_session_cache_hits_total",
		Help: "Person lookups served from the session cache.",
	})

	SessionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_session_cache_misses_total",
		Help: "Person lookups that went to the store.",
	})

	SessionCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dr_session_cache_evictions_total",
		Help: "Session ledgers dropped by the LRU.",
	})
)
