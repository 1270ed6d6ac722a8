package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "craftplan"
	// Subsystem for search engine metrics
	subsystem = "search"
)

// SearchMetricsCollector implements planning.SearchObserver with
// Prometheus counters and histograms
type SearchMetricsCollector struct {
	statesExpanded      prometheus.Counter
	successorsPushed    prometheus.Counter
	transitionsPruned   prometheus.Counter
	staleEntriesSkipped prometheus.Counter
	searchesTotal       *prometheus.CounterVec
	searchDuration      prometheus.Histogram
}

// NewSearchMetricsCollector creates a new search metrics collector
func NewSearchMetricsCollector() *SearchMetricsCollector {
	return &SearchMetricsCollector{
		statesExpanded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "states_expanded_total",
			Help:      "Total number of states popped and expanded",
		}),
		successorsPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "successors_pushed_total",
			Help:      "Total number of successor states pushed onto the queue",
		}),
		transitionsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transitions_pruned_total",
			Help:      "Total number of transitions excluded by an infinite heuristic bias",
		}),
		staleEntriesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stale_entries_skipped_total",
			Help:      "Total number of popped queue entries skipped as stale",
		}),
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "searches_total",
			Help:      "Total number of completed searches by outcome",
		}, []string{"outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Search duration distribution",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0},
		}),
	}
}

// Register registers all collectors with the given registry
func (c *SearchMetricsCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.statesExpanded,
		c.successorsPushed,
		c.transitionsPruned,
		c.staleEntriesSkipped,
		c.searchesTotal,
		c.searchDuration,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// StateExpanded records one state expansion
func (c *SearchMetricsCollector) StateExpanded() {
	c.statesExpanded.Inc()
}

// SuccessorPushed records one queue push
func (c *SearchMetricsCollector) SuccessorPushed() {
	c.successorsPushed.Inc()
}

// TransitionPruned records one heuristic prune
func (c *SearchMetricsCollector) TransitionPruned() {
	c.transitionsPruned.Inc()
}

// StaleEntrySkipped records one stale pop
func (c *SearchMetricsCollector) StaleEntrySkipped() {
	c.staleEntriesSkipped.Inc()
}

// SearchFinished records one completed search with its outcome
func (c *SearchMetricsCollector) SearchFinished(found bool, elapsed time.Duration) {
	outcome := "failure"
	if found {
		outcome = "success"
	}
	c.searchesTotal.WithLabelValues(outcome).Inc()
	c.searchDuration.Observe(elapsed.Seconds())
}
