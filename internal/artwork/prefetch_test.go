package artwork_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marco/cinema/internal/artwork"
	"github.com/marco/cinema/internal/artwork/mocks"
)

func TestGenerateMissing_SkipsExistingAndDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	withPoster := filepath.Join(dir, "has_poster.mp4")
	writePNG(t, filepath.Join(dir, "has_poster.png"), 4, 4)
	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.mkv")

	thumbs := mocks.NewMockThumbnailer(ctrl)
	var calls atomic.Int32
	thumbs.EXPECT().
		CreateThumbnail(gomock.Any(), gomock.Any(), gomock.Any(), artwork.PosterWidth, artwork.PosterHeight).
		DoAndReturn(func(ctx context.Context, video, out string, w, h int) error {
			calls.Add(1)
			return os.WriteFile(out, []byte("frame"), 0o644)
		}).
		Times(2)

	var processed atomic.Int64
	movies := []string{withPoster, a, b, a}
	results := artwork.GenerateMissing(context.Background(), thumbs, movies,
		artwork.PosterWidth, artwork.PosterHeight, 3, &processed)

	require.Len(t, results, 4)
	assert.Equal(t, int64(4), processed.Load())
	assert.Equal(t, int32(2), calls.Load())

	skipped := 0
	for _, r := range results {
		assert.NoError(t, r.Err)
		if r.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 2, skipped)
	assert.FileExists(t, filepath.Join(dir, "a.png"))
	assert.FileExists(t, filepath.Join(dir, "b.png"))
}

func TestGenerateMissing_ReportsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	movie := filepath.Join(dir, "broken.avi")

	thumbs := mocks.NewMockThumbnailer(ctrl)
	thumbs.EXPECT().
		CreateThumbnail(gomock.Any(), movie, filepath.Join(dir, "broken.png"), 100, 150).
		Return(errors.New("ffmpeg failed"))

	results := artwork.GenerateMissing(context.Background(), thumbs, []string{movie}, 100, 150, 0, nil)

	require.Len(t, results, 1)
	assert.EqualError(t, results[0].Err, "ffmpeg failed")
	assert.False(t, results[0].Skipped)
	_, err := os.Stat(results[0].Poster)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateMissing_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	// no EXPECT: nothing may run once the context is done
	thumbs := mocks.NewMockThumbnailer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	movies := []string{filepath.Join(dir, "one.mp4"), filepath.Join(dir, "two.mp4")}
	results := artwork.GenerateMissing(ctx, thumbs, movies, 10, 10, 2, nil)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
