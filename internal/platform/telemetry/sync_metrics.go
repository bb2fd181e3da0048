package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics are the Prometheus collectors describing sync cycles.
// They are served on /-/metrics alongside the Go runtime collectors.
type SyncMetrics struct {
	cycles       *prometheus.CounterVec
	changes      *prometheus.CounterVec
	pushFailures prometheus.Counter
	duration     prometheus.Histogram
	quotes       prometheus.Gauge
	inProgress   prometheus.Gauge
}

// NewSyncMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests rely on.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotesync",
			Subsystem: "sync",
			Name:      "cycles_total",
			Help:      "Sync cycles by outcome.",
		}, []string{"status"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotesync",
			Subsystem: "sync",
			Name:      "changes_total",
			Help:      "Merge change log entries by kind.",
		}, []string{"kind"}),
		pushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quotesync",
			Subsystem: "sync",
			Name:      "push_failures_total",
			Help:      "Cycles whose push stage was rejected or failed.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quotesync",
			Subsystem: "sync",
			Name:      "duration_seconds",
			Help:      "Wall time of completed sync cycles.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		quotes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quotesync",
			Name:      "quotes",
			Help:      "Quotes in the local collection.",
		}),
		inProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quotesync",
			Subsystem: "sync",
			Name:      "in_progress",
			Help:      "1 while a sync cycle is running.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.cycles, m.changes, m.pushFailures, m.duration, m.quotes, m.inProgress)
	}

	return m
}

// CycleStarted marks a cycle as running.
func (m *SyncMetrics) CycleStarted() {
	m.inProgress.Set(1)
}

// CycleFinished records the outcome of a cycle.
func (m *SyncMetrics) CycleFinished(status string, added, updated int, pushFailed bool, elapsed time.Duration) {
	m.inProgress.Set(0)
	m.cycles.WithLabelValues(status).Inc()
	m.changes.WithLabelValues("added").Add(float64(added))
	m.changes.WithLabelValues("updated").Add(float64(updated))
	m.duration.Observe(elapsed.Seconds())

	if pushFailed {
		m.pushFailures.Inc()
	}
}

// CycleSkipped counts a trigger dropped by the re-entrancy guard.
func (m *SyncMetrics) CycleSkipped() {
	m.cycles.WithLabelValues("skipped").Inc()
}

// SetQuoteCount publishes the collection size.
func (m *SyncMetrics) SetQuoteCount(n int) {
	m.quotes.Set(float64(n))
}
