// Package metrics exposes Prometheus instrumentation for library scans and
// artwork loading.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the catalog and artwork instruments. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	ScanDuration   prometheus.Histogram
	ScannedFiles   prometheus.Gauge
	MoviesLoaded   *prometheus.GaugeVec
	SidecarErrors  prometheus.Counter
	ArtworkLoads   *prometheus.CounterVec
	Rescans        prometheus.Counter
	RescansSkipped prometheus.Counter
}

// New creates and registers the metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cinema",
			Subsystem: "library",
			Name:      "load_duration_seconds",
			Help:      "Duration of a full library load, including metadata and artwork.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ScannedFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cinema",
			Subsystem: "library",
			Name:      "scanned_files",
			Help:      "Movie files found by the last directory scan.",
		}),
		MoviesLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cinema",
			Subsystem: "library",
			Name:      "movies",
			Help:      "Movies in the catalog by category.",
		}, []string{"category"}),
		SidecarErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cinema",
			Subsystem: "library",
			Name:      "sidecar_errors_total",
			Help:      "Sidecar metadata files that failed to parse.",
		}),
		ArtworkLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinema",
			Subsystem: "artwork",
			Name:      "loads_total",
			Help:      "Poster loads by the source that finally provided the image.",
		}, []string{"source"}),
		Rescans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cinema",
			Subsystem: "library",
			Name:      "rescans_total",
			Help:      "Library rescans triggered by the watcher or the rescan ticker.",
		}),
		RescansSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cinema",
			Subsystem: "library",
			Name:      "rescans_skipped_total",
			Help:      "Rescans skipped because a previous one was still running.",
		}),
	}

	reg.MustRegister(
		m.ScanDuration,
		m.ScannedFiles,
		m.MoviesLoaded,
		m.SidecarErrors,
		m.ArtworkLoads,
		m.Rescans,
		m.RescansSkipped,
	)

	return m
}

// ObserveLoad records a completed library load.
func (m *Metrics) ObserveLoad(d time.Duration, scanned int, perCategory map[string]int) {
	if m == nil {
		return
	}
	m.ScanDuration.Observe(d.Seconds())
	m.ScannedFiles.Set(float64(scanned))
	m.MoviesLoaded.Reset()
	for category, n := range perCategory {
		m.MoviesLoaded.WithLabelValues(category).Set(float64(n))
	}
}

// SidecarError counts a sidecar that could not be parsed.
func (m *Metrics) SidecarError() {
	if m == nil {
		return
	}
	m.SidecarErrors.Inc()
}

// ArtworkLoaded counts a poster load by source.
func (m *Metrics) ArtworkLoaded(source string) {
	if m == nil {
		return
	}
	m.ArtworkLoads.WithLabelValues(source).Inc()
}

// Rescan counts a rescan; skipped is true when it was dropped due to overlap.
func (m *Metrics) Rescan(skipped bool) {
	if m == nil {
		return
	}
	if skipped {
		m.RescansSkipped.Inc()
		return
	}
	m.Rescans.Inc()
}
