// Package metrics exposes Prometheus collectors for the page cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"calldash/internal/pagination"
)

// PaginatorMetrics implements pagination.Observer on top of Prometheus collectors.
// One instance is shared by every paginator of a process; the consumer label tells them apart.
type PaginatorMetrics struct {
	pagesServed   *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewPaginatorMetrics creates the collectors and registers them with reg.
func NewPaginatorMetrics(reg prometheus.Registerer) (*PaginatorMetrics, error) {
	m := &PaginatorMetrics{
		pagesServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paginator_pages_served_total",
				Help: "Pages served by the page cache, by consumer and source (cache or fetch).",
			},
			[]string{"consumer", "source"},
		),
		fetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paginator_fetch_failures_total",
				Help: "Page fetches that returned an error.",
			},
			[]string{"consumer"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paginator_fetch_duration_seconds",
				Help:    "Latency of page fetches that missed the cache.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"consumer"},
		),
	}

	for _, c := range []prometheus.Collector{m.pagesServed, m.fetchFailures, m.fetchDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// For returns an observer that labels events with consumer.
func (m *PaginatorMetrics) For(consumer string) pagination.Observer {
	return &consumerObserver{m: m, consumer: consumer}
}

type consumerObserver struct {
	m        *PaginatorMetrics
	consumer string
}

func (o *consumerObserver) PageServed(src pagination.Source, elapsed time.Duration) {
	o.m.pagesServed.WithLabelValues(o.consumer, string(src)).Inc()
	if src == pagination.SourceFetch {
		o.m.fetchDuration.WithLabelValues(o.consumer).Observe(elapsed.Seconds())
	}
}

func (o *consumerObserver) FetchFailed(error) {
	o.m.fetchFailures.WithLabelValues(o.consumer).Inc()
}
