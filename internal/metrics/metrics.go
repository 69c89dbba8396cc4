// Package metrics holds the Prometheus instruments recorded while counting
// arrangements. Instruments live on a private registry so that several runs
// (and tests) in one process never collide.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gitrdm/hotsprings/pkg/springs"
)

// Variant labels distinguish plain records from unfolded ones.
const (
	VariantPlain    = "plain"
	VariantUnfolded = "unfolded"
)

// Metrics groups the counting instruments and their registry.
type Metrics struct {
	registry *prometheus.Registry

	records    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	memoHits   prometheus.Counter
	memoMisses prometheus.Counter
	memoStates prometheus.Histogram
}

// New registers all instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "springs_records_total",
			Help: "Records counted, by variant",
		}, []string{"variant"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "springs_count_duration_seconds",
			Help:    "Time to count one record, by variant",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		}, []string{"variant"}),
		memoHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "springs_memo_hits_total",
			Help: "Memo table lookups answered from cache",
		}),
		memoMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "springs_memo_misses_total",
			Help: "Memo table lookups that had to be computed",
		}),
		memoStates: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "springs_memo_states",
			Help:    "Distinct suffix states computed per record",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
	}
}

// ObserveCount records one counted record.
func (m *Metrics) ObserveCount(variant string, elapsed time.Duration) {
	m.records.WithLabelValues(variant).Inc()
	m.duration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// ObserveMemo records memo table statistics from one memoized count.
func (m *Metrics) ObserveMemo(stats springs.SearchStats) {
	m.memoHits.Add(float64(stats.Hits))
	m.memoMisses.Add(float64(stats.Misses))
	m.memoStates.Observe(float64(stats.States))
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile dumps all metrics to path in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
