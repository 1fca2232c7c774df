package artwork_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marco/cinema/internal/artwork"
	"github.com/marco/cinema/internal/artwork/mocks"
	"github.com/marco/cinema/internal/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func assertPrepared(t *testing.T, tex *artwork.Texture) {
	t.Helper()
	require.True(t, tex.Valid())
	assert.Equal(t, artwork.FilterTrilinear, tex.Filter)
	assert.Equal(t, artwork.WrapClamp, tex.Wrap)
	assert.Len(t, tex.Levels, artwork.MipCount(tex.Width, tex.Height))
}

func TestLoader_UsesPosterNextToMovie(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	movie := filepath.Join(dir, "Clip.mp4")
	writePNG(t, filepath.Join(dir, "Clip.png"), 40, 60)

	// no EXPECT: the thumbnailer must not be called
	thumbs := mocks.NewMockThumbnailer(ctrl)
	l := artwork.NewLoader(artwork.LoaderOptions{Thumbnailer: thumbs}, testLogger())

	tex := l.LoadPoster(context.Background(), movie)

	assertPrepared(t, tex)
	assert.Equal(t, artwork.SourceSidecar, tex.Source)
	assert.Equal(t, 40, tex.Width)
	assert.Equal(t, 60, tex.Height)
}

func TestLoader_GeneratesThumbnailWhenPosterMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	movie := filepath.Join(dir, "Clip.mkv")
	poster := filepath.Join(dir, "Clip.png")

	thumbs := mocks.NewMockThumbnailer(ctrl)
	thumbs.EXPECT().
		CreateThumbnail(gomock.Any(), movie, poster, artwork.PosterWidth, artwork.PosterHeight).
		DoAndReturn(func(ctx context.Context, videoPath, outputPath string, width, height int) error {
			writePNG(t, outputPath, width, height)
			return nil
		})

	l := artwork.NewLoader(artwork.LoaderOptions{Thumbnailer: thumbs}, testLogger())
	tex := l.LoadPoster(context.Background(), movie)

	assertPrepared(t, tex)
	assert.Equal(t, artwork.SourceThumbnail, tex.Source)
	assert.Equal(t, artwork.PosterWidth, tex.Width)
	assert.Equal(t, artwork.PosterHeight, tex.Height)
}

func TestLoader_CorruptPosterFallsThroughToThumbnail(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	movie := filepath.Join(dir, "Clip.mp4")
	poster := filepath.Join(dir, "Clip.png")
	require.NoError(t, os.WriteFile(poster, []byte("not a png"), 0o644))

	thumbs := mocks.NewMockThumbnailer(ctrl)
	thumbs.EXPECT().
		CreateThumbnail(gomock.Any(), movie, poster, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, videoPath, outputPath string, width, height int) error {
			writePNG(t, outputPath, 8, 8)
			return nil
		})

	tex := artwork.NewLoader(artwork.LoaderOptions{Thumbnailer: thumbs}, testLogger()).
		LoadPoster(context.Background(), movie)

	assert.Equal(t, artwork.SourceThumbnail, tex.Source)
}

func TestLoader_DefaultPosterWhenEverythingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	movie := filepath.Join(dir, "Clip.avi")

	thumbs := mocks.NewMockThumbnailer(ctrl)
	thumbs.EXPECT().
		CreateThumbnail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("ffmpeg: exit status 1"))

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	l := artwork.NewLoader(artwork.LoaderOptions{Thumbnailer: thumbs, Metrics: m}, testLogger())

	tex := l.LoadPoster(context.Background(), movie)

	assertPrepared(t, tex)
	assert.Equal(t, artwork.SourceDefault, tex.Source)
	assert.Equal(t, artwork.PosterWidth, tex.Width)
	assert.Equal(t, artwork.PosterHeight, tex.Height)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ArtworkLoads.WithLabelValues("default")))
}

func TestLoader_ThumbnailReportsSuccessButWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	thumbs := mocks.NewMockThumbnailer(ctrl)
	thumbs.EXPECT().
		CreateThumbnail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	tex := artwork.NewLoader(artwork.LoaderOptions{Thumbnailer: thumbs}, testLogger()).
		LoadPoster(context.Background(), filepath.Join(dir, "Clip.mp4"))

	assertPrepared(t, tex)
	assert.Equal(t, artwork.SourceDefault, tex.Source)
}

func TestLoader_ConfiguredDefaultPoster(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "placeholder.png")
	writePNG(t, custom, 16, 24)

	l := artwork.NewLoader(artwork.LoaderOptions{DefaultPoster: custom}, testLogger())
	tex := l.LoadPoster(context.Background(), filepath.Join(dir, "Clip.mp4"))

	assert.Equal(t, artwork.SourceDefault, tex.Source)
	assert.Equal(t, 16, tex.Width)
	assert.Equal(t, 24, tex.Height)
}

func TestLoader_BrokenConfiguredDefaultUsesEmbedded(t *testing.T) {
	dir := t.TempDir()

	l := artwork.NewLoader(artwork.LoaderOptions{
		DefaultPoster: filepath.Join(dir, "missing.png"),
	}, testLogger())
	tex := l.LoadPoster(context.Background(), filepath.Join(dir, "Clip.mp4"))

	assertPrepared(t, tex)
	assert.Equal(t, artwork.SourceDefault, tex.Source)
	assert.Equal(t, artwork.PosterWidth, tex.Width)
	assert.Equal(t, artwork.PosterHeight, tex.Height)
}

func TestLoader_EachLoadGetsItsOwnTexture(t *testing.T) {
	dir := t.TempDir()
	l := artwork.NewLoader(artwork.LoaderOptions{}, testLogger())

	a := l.LoadPoster(context.Background(), filepath.Join(dir, "a.mp4"))
	b := l.LoadPoster(context.Background(), filepath.Join(dir, "b.mp4"))
	a.Release()

	assert.False(t, a.Valid())
	assert.True(t, b.Valid())
}

func TestNewTexture_NormalizesOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	img.Set(10, 10, color.NRGBA{R: 255, A: 255})

	tex := artwork.NewTexture(img, artwork.SourceSidecar)

	require.True(t, tex.Valid())
	assert.Equal(t, image.Rect(0, 0, 4, 2), tex.Levels[0].Bounds())
	assert.Equal(t, uint8(255), tex.Levels[0].Pix[0])
}
