package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's prometheus instruments on a private registry.
type Collector struct {
	registry *prometheus.Registry

	CreditsRegistered  prometheus.Counter
	Allocations        prometheus.Counter
	AllocationFailures prometheus.Counter
	LedgerAppends      *prometheus.CounterVec
	OutboundProcessed  *prometheus.CounterVec
	Reversals          prometheus.Counter
	AllocationDuration prometheus.Histogram
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		CreditsRegistered: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "pixledger_credits_registered_total",
			Help: "Total number of incoming credits registered",
		}),
		Allocations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "pixledger_allocations_total",
			Help: "Total number of completed allocations",
		}),
		AllocationFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "pixledger_allocation_failures_total",
			Help: "Total number of failed allocation attempts",
		}),
		LedgerAppends: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "pixledger_ledger_appends_total",
			Help: "Ledger entries appended, by entry type",
		}, []string{"entry_type"}),
		OutboundProcessed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "pixledger_outbound_processed_total",
			Help: "Outbound requests processed, by action",
		}, []string{"action"}),
		Reversals: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "pixledger_reversals_total",
			Help: "Compensating reversal entries created",
		}),
		AllocationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "pixledger_allocation_duration_seconds",
			Help:    "Time taken to perform an allocation",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler exposes the registry for the /metrics route.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
