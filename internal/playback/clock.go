package playback

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Clock is a Transport without a decoder: the position advances with wall
// time while playing. It is safe for concurrent use.
type Clock struct {
	mu sync.Mutex

	duration    time.Duration
	now         func() time.Time
	log         *slog.Logger
	initialized bool

	path     string
	started  bool
	paused   bool
	hadError bool
	base     time.Duration // position at anchor
	anchor   time.Time
}

// ClockOptions configures a Clock.
type ClockOptions struct {
	// Duration is reported for every movie; 0 means unknown, and the clock
	// then never finishes on its own.
	Duration time.Duration
	// Now overrides time.Now.
	Now func() time.Time
}

var _ Transport = (*Clock)(nil)

// NewClock creates a headless transport.
func NewClock(opts ClockOptions, logger *slog.Logger) *Clock {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Clock{
		duration: opts.Duration,
		now:      opts.Now,
		log:      logger.With("component", "clock"),
	}
}

func (c *Clock) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to initialize clock transport: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initialized = true
	return nil
}

func (c *Clock) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.initialized = false
	return nil
}

func (c *Clock) Start(path, displayName string, resume, encrypted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}

	c.path = path
	c.started = false
	c.paused = false
	c.base = 0

	if _, err := os.Stat(path); err != nil {
		c.hadError = true
		return fmt.Errorf("failed to open movie: %w", err)
	}

	c.hadError = false
	c.started = true
	c.anchor = c.now()
	c.log.Info("playback started",
		"path", path,
		"title", displayName,
		"resume", resume,
		"encrypted", encrypted,
	)
	return nil
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Clock) stopLocked() {
	if !c.started {
		return
	}
	c.base = c.positionLocked()
	c.started = false
	c.log.Info("playback stopped", "path", c.path, "position", c.base)
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.paused {
		return
	}
	c.base = c.positionLocked()
	c.paused = true
}

func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || !c.paused {
		return
	}
	c.anchor = c.now()
	c.paused = false
}

func (c *Clock) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *Clock) positionLocked() time.Duration {
	pos := c.base
	if c.started && !c.paused {
		pos += c.now().Sub(c.anchor)
	}
	return c.clamp(pos)
}

func (c *Clock) SetPosition(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(pos)
}

func (c *Clock) SeekDelta(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(c.positionLocked() + delta)
}

func (c *Clock) seekLocked(pos time.Duration) {
	if !c.started {
		return
	}
	c.base = c.clamp(pos)
	c.anchor = c.now()
}

func (c *Clock) clamp(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if c.duration > 0 && pos > c.duration {
		return c.duration
	}
	return pos
}

func (c *Clock) Duration() time.Duration {
	return c.duration
}

func (c *Clock) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration > 0 && c.path != "" && !c.hadError && c.positionLocked() >= c.duration
}

func (c *Clock) HadError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hadError
}
