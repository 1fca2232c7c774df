package artwork

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/marco/cinema/internal/retry"
)

//go:generate mockgen -destination=mocks/thumbnailer.go -package=mocks github.com/marco/cinema/internal/artwork Thumbnailer

// Thumbnailer renders a still frame of a video into an image file.
type Thumbnailer interface {
	CreateThumbnail(ctx context.Context, videoPath, outputPath string, width, height int) error
}

// FFmpegThumbnailer extracts a frame with the ffmpeg binary.
type FFmpegThumbnailer struct {
	ffmpegPath string
	seek       time.Duration
	timeout    time.Duration
	attempts   int
	backoff    time.Duration
	log        *slog.Logger
}

// FFmpegOptions configures an FFmpegThumbnailer. Zero values pick defaults.
type FFmpegOptions struct {
	Path     string        // binary, default "ffmpeg"
	Seek     time.Duration // frame position, default 1s
	Timeout  time.Duration // per attempt, default 30s
	Attempts int           // default 2
}

// NewFFmpegThumbnailer creates a thumbnailer around the ffmpeg binary.
func NewFFmpegThumbnailer(opts FFmpegOptions, logger *slog.Logger) *FFmpegThumbnailer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Path == "" {
		opts.Path = "ffmpeg"
	}
	if opts.Seek <= 0 {
		opts.Seek = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 2
	}
	return &FFmpegThumbnailer{
		ffmpegPath: opts.Path,
		seek:       opts.Seek,
		timeout:    opts.Timeout,
		attempts:   opts.Attempts,
		backoff:    500 * time.Millisecond,
		log:        logger.With("component", "thumbnailer"),
	}
}

// CreateThumbnail writes a width x height PNG of the frame at the configured
// seek position. The frame is scaled to fit and padded to the exact size.
func (f *FFmpegThumbnailer) CreateThumbnail(ctx context.Context, videoPath, outputPath string, width, height int) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	err := retry.Retry(ctx, func(ctx context.Context) error {
		return f.run(ctx, videoPath, outputPath, width, height)
	}, f.attempts, f.backoff)
	if err != nil {
		// never leave a truncated image behind for the next load to trip on
		os.Remove(outputPath)
		return fmt.Errorf("thumbnail for %s: %w", videoPath, err)
	}

	f.log.Debug("thumbnail created", "video", videoPath, "output", outputPath)
	return nil
}

func (f *FFmpegThumbnailer) run(ctx context.Context, videoPath, outputPath string, width, height int) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.ffmpegPath, f.args(videoPath, outputPath, width, height)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

func (f *FFmpegThumbnailer) args(videoPath, outputPath string, width, height int) []string {
	w, h := strconv.Itoa(width), strconv.Itoa(height)
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(f.seek.Seconds(), 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", "scale=" + w + ":" + h + ":force_original_aspect_ratio=decrease,pad=" + w + ":" + h + ":(ow-iw)/2:(oh-ih)/2",
		"-y",
		outputPath,
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
