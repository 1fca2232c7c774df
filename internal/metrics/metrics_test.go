package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLoad(2*time.Second, 5, map[string]int{"my_videos": 3, "trailers": 2})
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ScannedFiles))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MoviesLoaded.WithLabelValues("my_videos")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MoviesLoaded.WithLabelValues("trailers")))

	// a later load replaces the per-category values
	m.ObserveLoad(time.Second, 1, map[string]int{"my_videos": 1})
	assert.Equal(t, 1, testutil.CollectAndCount(m.MoviesLoaded))
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ArtworkLoaded("default")
	m.ArtworkLoaded("default")
	m.ArtworkLoaded("sidecar")
	m.SidecarError()
	m.Rescan(false)
	m.Rescan(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ArtworkLoads.WithLabelValues("default")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ArtworkLoads.WithLabelValues("sidecar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SidecarErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rescans))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RescansSkipped))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveLoad(time.Second, 1, map[string]int{"my_videos": 1})
		m.SidecarError()
		m.ArtworkLoaded("default")
		m.Rescan(true)
	})
}
