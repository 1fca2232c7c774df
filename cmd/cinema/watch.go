package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marco/cinema/internal/catalog"
	"github.com/marco/cinema/internal/metrics"
	"github.com/marco/cinema/internal/scanner"
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the library loaded and rescan it when files change",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	rootCmd.AddCommand(watchCmd)
}

// library keeps the most recent fully loaded catalog. Rescans build a new
// catalog and publish it when done, so readers never see a partial load.
type library struct {
	current        atomic.Pointer[catalog.Catalog]
	scanInProgress atomic.Bool
	rerun          atomic.Bool
	metrics        *metrics.Metrics

	// load builds a catalog; nil means loadCatalog.
	load func(ctx context.Context, m *metrics.Metrics) *catalog.Catalog

	mu         sync.Mutex
	closed     bool
	background sync.WaitGroup
}

// rescan loads a fresh catalog. A request that arrives while another load is
// running is handed to that load, which runs once more before returning.
func (l *library) rescan(ctx context.Context, reason string) {
	l.rerun.Store(true)
	for {
		if !l.scanInProgress.CompareAndSwap(false, true) {
			logger.Info("rescan queued: previous scan still running", "reason", reason)
			l.metrics.Rescan(true)
			return
		}
		for l.rerun.Swap(false) && ctx.Err() == nil {
			l.reload(ctx, reason)
			reason = "changed during previous scan"
		}
		l.scanInProgress.Store(false)

		// a request may have been queued after the last check
		if !l.rerun.Load() || ctx.Err() != nil {
			return
		}
	}
}

func (l *library) reload(ctx context.Context, reason string) {
	load := l.load
	if load == nil {
		load = loadCatalog
	}

	start := time.Now()
	logger.Info("rescan started", "reason", reason)
	l.metrics.Rescan(false)

	next := load(ctx, l.metrics)
	if old := l.current.Swap(next); old != nil {
		old.Release()
	}

	logger.Info("rescan completed",
		"reason", reason,
		"movies", next.Len(),
		"duration_sec", time.Since(start).Seconds(),
	)
}

// rescanInBackground starts a rescan unless the library has been closed.
func (l *library) rescanInBackground(ctx context.Context, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.background.Add(1)
	go func() {
		defer l.background.Done()
		l.rescan(ctx, reason)
	}()
}

// close waits for background rescans and releases the published catalog.
func (l *library) close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.background.Wait()
	if c := l.current.Load(); c != nil {
		c.Release()
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reg *prometheus.Registry
	lib := &library{}
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		lib.metrics = metrics.New(reg)
	}

	lib.rescan(ctx, "startup")
	defer lib.close()

	dirs := cfg.Storage.ResolveAll(scanner.DefaultSearchDirs)
	watcher, err := scanner.NewWatcher(scanner.WatcherConfig{
		Directories:   dirs,
		Companions:    metadataExts,
		DebounceDelay: cfg.Library.Debounce(),
		Logger:        logger,
	}, scanner.New(scanner.SupportedExtensions, logger), func(paths []string) {
		lib.rescanInBackground(ctx, "files changed")
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := watcher.Start(); err != nil {
			return err
		}
		<-ctx.Done()
		return watcher.Stop()
	})

	if interval := cfg.Library.RescanInterval(); interval > 0 {
		g.Go(func() error {
			logger.Info("scheduled rescans started", "interval_minutes", interval.Minutes())
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					lib.rescan(ctx, "schedule")
				case <-ctx.Done():
					logger.Info("scheduled rescans stopped")
					return nil
				}
			}
		})
	}

	if reg != nil {
		srv := metrics.NewServer(cfg.Metrics.Listen, reg, logger)
		g.Go(func() error {
			return srv.Run(ctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
