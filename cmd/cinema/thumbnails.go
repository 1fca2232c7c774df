package main

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/marco/cinema/internal/artwork"
	"github.com/marco/cinema/internal/scanner"
)

func init() {
	thumbsCmd := &cobra.Command{
		Use:   "thumbnails",
		Short: "Generate posters for movies that have none",
		Long: `Generate a poster image next to every movie that lacks one, using ffmpeg.

Later scans pick the generated posters up instead of running ffmpeg while
the library loads.`,
		Args: cobra.NoArgs,
		RunE: runThumbnails,
	}
	thumbsCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Number of concurrent ffmpeg runs")
	rootCmd.AddCommand(thumbsCmd)
}

func runThumbnails(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")

	s := scanner.New(scanner.SupportedExtensions, logger)
	movies := s.ScanAll(cfg.Storage.ResolveAll(scanner.DefaultSearchDirs))
	if len(movies) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No videos found")
		return nil
	}

	thumbs := artwork.NewFFmpegThumbnailer(artwork.FFmpegOptions{
		Path:     cfg.Artwork.FFmpegPath,
		Timeout:  cfg.Artwork.ThumbnailTimeout(),
		Attempts: cfg.Artwork.ThumbnailAttempts,
	}, logger)

	var processed atomic.Int64
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logger.Info("progress", "processed", processed.Load(), "total", len(movies))
			case <-done:
				return
			}
		}
	}()

	start := time.Now()
	results := artwork.GenerateMissing(cmd.Context(), thumbs, movies,
		cfg.Artwork.PosterWidth, cfg.Artwork.PosterHeight, workers, &processed)
	close(done)

	var created, skipped, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			logger.Warn("poster generation failed", "movie", r.Movie, "error", r.Err)
		case r.Skipped:
			skipped++
		default:
			created++
		}
	}

	logger.Info("poster generation complete", "duration_sec", time.Since(start).Seconds())
	fmt.Fprintf(cmd.OutOrStdout(), "Created %d posters, %d already present, %d failed\n", created, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d posters could not be generated", failed)
	}
	return nil
}
