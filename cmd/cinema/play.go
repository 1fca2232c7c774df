package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marco/cinema/internal/catalog"
	"github.com/marco/cinema/internal/playback"
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play <movie>",
		Short: "Play a movie on the headless transport, resuming where it was left",
		Long: `Play a movie on the headless transport.

The position advances with wall time until the movie finishes or the command
is interrupted; the position is saved on exit and offered again next time.`,
		Args: cobra.ExactArgs(1),
		RunE: runPlay,
	}
	playCmd.Flags().Duration("duration", 0, "Movie length reported by the transport (0 = unknown)")
	playCmd.Flags().Duration("report", 10*time.Second, "How often to log the playback position")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetDuration("duration")
	report, _ := cmd.Flags().GetDuration("report")
	if report <= 0 {
		return fmt.Errorf("--report must be positive")
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving movie path: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := playback.NewClock(playback.ClockOptions{Duration: duration}, logger)
	if err := transport.Init(ctx); err != nil {
		return fmt.Errorf("starting transport: %w", err)
	}
	defer transport.Shutdown()

	store, err := playback.OpenResumeStore(cfg.Playback.ResumeDB)
	if err != nil {
		return err
	}
	defer store.Close()

	player := playback.NewPlayer(transport, store, playback.PlayerOptions{
		MinResume:    cfg.Playback.MinResume(),
		MinRemaining: cfg.Playback.MinRemaining(),
	}, logger)

	entry := catalog.New(cfg.Storage, nil, catalog.WithLogger(logger)).Describe(path)

	resumed, err := player.Start(ctx, entry.Path, entry.Title, entry.Encrypted)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if resumed {
		fmt.Fprintf(out, "Resuming %s at %s\n", entry.Title, transport.Position().Truncate(time.Second))
	} else {
		fmt.Fprintf(out, "Playing %s\n", entry.Title)
	}

	watchPlayback(ctx, transport, report)

	// ctx may already be canceled; saving must still go through
	if err := player.Stop(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("saving resume point: %w", err)
	}
	if transport.Finished() {
		fmt.Fprintln(out, "Finished")
	} else {
		fmt.Fprintf(out, "Stopped at %s\n", transport.Position().Truncate(time.Second))
	}
	return nil
}

// watchPlayback blocks until the movie finishes, fails, or ctx is done.
func watchPlayback(ctx context.Context, t playback.Transport, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	poll := time.NewTicker(250 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			if t.Finished() || t.HadError() {
				return
			}
		case <-ticker.C:
			logger.Info("playback position", "position", t.Position().Truncate(time.Second), "duration", t.Duration())
		}
	}
}
