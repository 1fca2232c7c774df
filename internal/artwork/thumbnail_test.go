package artwork

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFFmpeg writes a shell script standing in for ffmpeg. Every invocation
// appends a line to calls; the body decides the outcome.
func fakeFFmpeg(t *testing.T, body string) (bin, calls string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	dir := t.TempDir()
	bin = filepath.Join(dir, "ffmpeg")
	calls = filepath.Join(dir, "calls")
	script := "#!/bin/sh\necho run >> " + calls + "\n" + body + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, calls
}

func callCount(t *testing.T, calls string) int {
	t.Helper()
	data, err := os.ReadFile(calls)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(data), "run")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFFmpegThumbnailer_Args(t *testing.T) {
	f := NewFFmpegThumbnailer(FFmpegOptions{Seek: 2500 * time.Millisecond}, quietLogger())

	args := f.args("/m/in.mp4", "/m/in.png", 228, 344)

	assert.Equal(t, "ffmpeg", f.ffmpegPath)
	assert.Contains(t, strings.Join(args, " "), "-ss 2.500 -i /m/in.mp4 -frames:v 1")
	assert.Contains(t, args, "scale=228:344:force_original_aspect_ratio=decrease,pad=228:344:(ow-iw)/2:(oh-ih)/2")
	assert.Equal(t, "/m/in.png", args[len(args)-1])
}

func TestFFmpegThumbnailer_Success(t *testing.T) {
	// the output path is the last argument
	bin, calls := fakeFFmpeg(t, `for a; do out="$a"; done; : > "$out"`)
	out := filepath.Join(t.TempDir(), "sub", "poster.png")

	f := NewFFmpegThumbnailer(FFmpegOptions{Path: bin}, quietLogger())
	err := f.CreateThumbnail(context.Background(), "/m/in.mp4", out, 228, 344)

	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.Equal(t, 1, callCount(t, calls))
}

func TestFFmpegThumbnailer_FailureIsNotRetriedAndCleansUp(t *testing.T) {
	bin, calls := fakeFFmpeg(t, `for a; do out="$a"; done; echo partial > "$out"; echo "Invalid data found" >&2; exit 1`)
	out := filepath.Join(t.TempDir(), "poster.png")

	f := NewFFmpegThumbnailer(FFmpegOptions{Path: bin, Attempts: 3}, quietLogger())
	err := f.CreateThumbnail(context.Background(), "/m/in.mp4", out, 228, 344)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data found")
	assert.NoFileExists(t, out)
	assert.Equal(t, 1, callCount(t, calls))
}

func TestFFmpegThumbnailer_TimeoutIsRetried(t *testing.T) {
	bin, calls := fakeFFmpeg(t, `exec sleep 5`)
	out := filepath.Join(t.TempDir(), "poster.png")

	f := NewFFmpegThumbnailer(FFmpegOptions{Path: bin, Timeout: 100 * time.Millisecond, Attempts: 2}, quietLogger())
	f.backoff = time.Millisecond
	err := f.CreateThumbnail(context.Background(), "/m/in.mp4", out, 228, 344)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, callCount(t, calls))
}
