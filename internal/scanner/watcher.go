package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called once a burst of library changes has settled, with
// the changed paths in sorted order.
type ChangeHandler func(paths []string)

// Watcher monitors library directories and reports changes to movies and
// their companion files.
type Watcher struct {
	scanner       *Scanner
	directories   []string
	companions    []string
	debounceDelay time.Duration
	handler       ChangeHandler
	watcher       *fsnotify.Watcher
	logger        *slog.Logger
	stopChan      chan struct{}
	doneChan      chan struct{}

	// Debouncing state
	mu      sync.Mutex
	watched map[string]bool
	pending map[string]struct{}
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// WatcherConfig holds configuration for the file watcher
type WatcherConfig struct {
	Directories []string
	// Companions are extra extensions that count as library changes, such
	// as metadata and poster files stored next to movies.
	Companions    []string
	DebounceDelay time.Duration // How long to wait after the last event
	Logger        *slog.Logger
}

// NewWatcher creates a new directory watcher. Movie files are recognised by s.
func NewWatcher(cfg WatcherConfig, s *Scanner, handler ChangeHandler) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		scanner:       s,
		directories:   cfg.Directories,
		companions:    cfg.Companions,
		debounceDelay: cfg.DebounceDelay,
		handler:       handler,
		watcher:       fsWatcher,
		logger:        logger.With("component", "watcher"),
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
		watched:       make(map[string]bool),
		pending:       make(map[string]struct{}),
	}, nil
}

// Start begins watching directories for changes. Directories that do not
// exist are skipped.
func (w *Watcher) Start() error {
	for _, dir := range w.directories {
		if err := w.addDirectory(dir); err != nil {
			w.logger.Debug("not watching directory", "path", dir, "error", err)
		}
	}

	go w.processEvents()

	w.mu.Lock()
	count := len(w.watched)
	w.mu.Unlock()
	w.logger.Info("file watcher started",
		"directories", count,
		"debounce_seconds", w.debounceDelay.Seconds(),
	)
	return nil
}

// Stop stops watching directories. Pending changes are dropped.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	<-w.doneChan

	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

// Wait blocks until the watcher is stopped
func (w *Watcher) Wait() {
	<-w.doneChan
}

// addDirectory watches path and every directory below it.
func (w *Watcher) addDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip directories we can't access
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			w.logger.Warn("failed to add directory to watch", "path", p, "error", err)
			return nil
		}
		w.mu.Lock()
		w.watched[p] = true
		w.mu.Unlock()
		w.logger.Debug("watching directory", "path", p)
		return nil
	})
}

// processEvents handles fsnotify events
func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// handleEvent processes a single fsnotify event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addDirectory(path); err != nil {
				w.logger.Warn("failed to add new directory to watch", "path", path, "error", err)
				return
			}
			w.logger.Info("new directory detected, now watching", "path", path)
			// files may have landed before the watch was in place
			for _, movie := range w.scanner.ScanDirectory(path) {
				w.schedule(movie)
			}
			return
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		wasDir := w.watched[path]
		if wasDir {
			for p := range w.watched {
				if p == path || strings.HasPrefix(p, path+string(filepath.Separator)) {
					delete(w.watched, p)
				}
			}
		}
		w.mu.Unlock()
		if wasDir {
			w.schedule(path)
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.isLibraryFile(filepath.Base(path)) {
		return
	}

	w.logger.Debug("file event detected",
		"event", event.Op.String(),
		"file", path,
	)
	w.schedule(path)
}

func (w *Watcher) isLibraryFile(name string) bool {
	if IsJunkFile(name) {
		return false
	}
	if w.scanner.IsMediaFile(name) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, c := range w.companions {
		if ext == strings.ToLower(c) {
			return true
		}
	}
	return false
}

// schedule records a change and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(w.debounceDelay, func() {
		w.flush(gen)
	})
}

// flush hands the pending changes to the handler unless a newer event
// restarted the timer.
func (w *Watcher) flush(gen uint64) {
	w.mu.Lock()
	if gen != w.gen || w.stopped || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	sort.Strings(paths)
	w.logger.Info("library changed", "paths", len(paths))
	w.handler(paths)
}
