package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSidecar(t *testing.T) {
	sc, err := ParseSidecar([]byte(`{"title":"Night Flight","format":"3DLR","theater":"cinema_hall","category":"trailers","encrypted":true}`))
	require.NoError(t, err)
	require.NotNil(t, sc.Title)
	assert.Equal(t, "Night Flight", *sc.Title)
	assert.Equal(t, "3DLR", *sc.Format)
	assert.Equal(t, "cinema_hall", *sc.Theater)
	assert.Equal(t, "trailers", *sc.Category)
	require.NotNil(t, sc.Encrypted)
	assert.True(t, *sc.Encrypted)
}

func TestParseSidecar_AbsentAndMistypedFields(t *testing.T) {
	sc, err := ParseSidecar([]byte(`{"title": 42, "encrypted": "yes", "format": "2D", "rating": 5}`))
	require.NoError(t, err)
	assert.Nil(t, sc.Title)
	assert.Nil(t, sc.Encrypted)
	assert.Nil(t, sc.Theater)
	assert.Nil(t, sc.Category)
	require.NotNil(t, sc.Format)
	assert.Equal(t, "2D", *sc.Format)
}

func TestParseSidecar_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"truncated", `{"title": "x`},
		{"array", `["title"]`},
		{"null", `null`},
		{"plain text", `title=Movie`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSidecar([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestReadSidecar_Missing(t *testing.T) {
	sc, err := ReadSidecar(filepath.Join(t.TempDir(), "movie.mp4"))
	assert.NoError(t, err)
	assert.Nil(t, sc)
}

func TestReadSidecar_NextToMovie(t *testing.T) {
	dir := t.TempDir()
	movie := filepath.Join(dir, "movie.avi")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.txt"), []byte(`{"title":"From Disk"}`), 0o644))

	sc, err := ReadSidecar(movie)
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, "From Disk", *sc.Title)
}

func TestSidecar_Apply(t *testing.T) {
	e := newEntry("/sdcard/Movies/Trailers/3D/teaser.mp4")
	require.True(t, e.Is3D)
	require.Equal(t, CategoryTrailers, e.Category)

	title := "Teaser"
	(&Sidecar{Title: &title}).Apply(e)
	assert.Equal(t, "Teaser", e.Title)
	assert.True(t, e.Is3D, "no format keeps the path guess")
	assert.Equal(t, CategoryTrailers, e.Category)

	format := "2D"
	category := "whatever"
	(&Sidecar{Format: &format, Category: &category}).Apply(e)
	assert.Equal(t, Format2D, e.Format)
	assert.False(t, e.Is3D)
	assert.Equal(t, CategoryMyVideos, e.Category)
	assert.True(t, e.AllowTheaterSelection)
}
