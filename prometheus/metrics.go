// Package prometheus records run metrics and writes them in the Prometheus
// text exposition format for the node exporter textfile collector.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/elephantlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsNamespace prefixes every metric name.
const MetricsNamespace = "elephantlog"

// Metrics holds the counters and histograms of one run.
type Metrics struct {
	registry *prometheus.Registry

	OutcomesTotal          *prometheus.CounterVec
	FetchAttemptsTotal     prometheus.Counter
	FetchFailuresTotal     prometheus.Counter
	ArticleDurationSeconds prometheus.Histogram
}

// NewMetrics creates metrics registered on a fresh registry. Every outcome
// kind starts at zero so the textfile always lists all of them.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}
	m.OutcomesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "outcomes_total",
			Help:      "Total number of processed articles by outcome kind",
		},
		[]string{"kind"},
	)
	m.FetchAttemptsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "fetch_attempts_total",
			Help:      "Total number of article fetch attempts, retries included",
		},
	)
	m.FetchFailuresTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "fetch_failures_total",
			Help:      "Total number of failed article fetch attempts",
		},
	)
	m.ArticleDurationSeconds = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "article_duration_seconds",
			Help:      "Time spent processing one article in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
	)

	for _, kind := range elephantlog.OutcomeKinds() {
		m.OutcomesTotal.WithLabelValues(string(kind))
	}
	return m
}

// ObserveOutcome counts one processed article and its processing time.
func (m *Metrics) ObserveOutcome(kind elephantlog.OutcomeKind, d time.Duration) {
	m.OutcomesTotal.WithLabelValues(string(kind)).Inc()
	m.ArticleDurationSeconds.Observe(d.Seconds())
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes the current metric values to path atomically.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return elephantlog.Errorf(elephantlog.EINTERNAL, "write metrics %s: %v", path, err)
	}
	return nil
}

// Ensure CountingFetcher implements elephantlog.Fetcher at compile time.
var _ elephantlog.Fetcher = (*CountingFetcher)(nil)

// CountingFetcher counts every fetch attempt made through it. The pipeline
// calls Fetch once per attempt, so retries are counted individually.
type CountingFetcher struct {
	next    elephantlog.Fetcher
	metrics *Metrics
}

// NewCountingFetcher wraps next.
func NewCountingFetcher(next elephantlog.Fetcher, m *Metrics) *CountingFetcher {
	return &CountingFetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher.
func (f *CountingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.metrics.FetchAttemptsTotal.Inc()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.metrics.FetchFailuresTotal.Inc()
	}
	return html, err
}

// Close delegates to the wrapped fetcher.
func (f *CountingFetcher) Close() error {
	return f.next.Close()
}
