package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	builds        *prom.CounterVec
	buildDuration prom.Histogram
	entries       prom.Gauge
	navNotFound   prom.Counter
	cacheSyncs    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.builds = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "folio",
			Name:      "index_builds_total",
			Help:      "Index builds by result",
		}, []string{"result"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "folio",
			Name:      "index_build_duration_seconds",
			Help:      "Duration of a full index build",
			Buckets:   prom.DefBuckets,
		})
		pr.entries = prom.NewGauge(prom.GaugeOpts{
			Namespace: "folio",
			Name:      "index_entries",
			Help:      "Entries in the last successful index build, drafts included",
		})
		pr.navNotFound = prom.NewCounter(prom.CounterOpts{
			Namespace: "folio",
			Name:      "navigation_not_found_total",
			Help:      "Post lookups for a slug that is not in the index",
		})
		pr.cacheSyncs = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "folio",
			Name:      "cache_syncs_total",
			Help:      "Cache syncs by kind (full, incremental)",
		}, []string{"kind"})
		reg.MustRegister(pr.builds, pr.buildDuration, pr.entries, pr.navNotFound, pr.cacheSyncs)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveIndexBuild(d time.Duration, entries int, result ResultLabel) {
	p.builds.WithLabelValues(string(result)).Inc()
	p.buildDuration.Observe(d.Seconds())
	if result == ResultSuccess {
		p.entries.Set(float64(entries))
	}
}

func (p *PrometheusRecorder) IncNavigationNotFound() {
	p.navNotFound.Inc()
}

func (p *PrometheusRecorder) IncCacheSync(kind string) {
	p.cacheSyncs.WithLabelValues(kind).Inc()
}
