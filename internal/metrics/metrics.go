package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationCyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_generation_cycles_total",
		Help: "Total number of notification generation cycles started",
	})
	generationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_generation_failures_total",
		Help: "Total number of generation cycles aborted by snapshot failures",
	})
	candidatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_candidates_total",
		Help: "Total number of candidate notifications produced by the rules",
	})
	duplicatesSuppressedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_duplicates_suppressed_total",
		Help: "Total number of candidates dropped because their id already existed",
	})
	remoteSyncFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_remote_sync_failures_total",
		Help: "Total number of failed remote mirror reads or writes",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		generationCyclesTotal,
		generationFailuresTotal,
		candidatesTotal,
		duplicatesSuppressedTotal,
		remoteSyncFailuresTotal,
	)
}

// IncGenerationCycle increments the started-cycles counter.
func IncGenerationCycle() { generationCyclesTotal.Inc() }

// IncGenerationFailure increments the aborted-cycles counter.
func IncGenerationFailure() { generationFailuresTotal.Inc() }

// AddCandidates adds to the produced-candidates counter.
func AddCandidates(n int) { candidatesTotal.Add(float64(n)) }

// IncDuplicateSuppressed increments the suppressed-duplicates counter.
func IncDuplicateSuppressed() { duplicatesSuppressedTotal.Inc() }

// IncRemoteSyncFailure increments the mirror-failure counter.
func IncRemoteSyncFailure() { remoteSyncFailuresTotal.Inc() }
