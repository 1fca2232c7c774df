package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Default resume thresholds.
const (
	DefaultMinResume    = time.Minute
	DefaultMinRemaining = time.Minute
)

// ResumeStorage is the persistence a Player needs. *ResumeStore satisfies it.
type ResumeStorage interface {
	Get(ctx context.Context, path string) (ResumePoint, error)
	Save(ctx context.Context, path string, p ResumePoint) error
}

// PlayerOptions configures resume behavior. Zero values pick the defaults.
type PlayerOptions struct {
	// MinResume is how far into a movie the viewer must have been for a
	// resume to be offered.
	MinResume time.Duration
	// MinRemaining is how much of the movie must be left; a movie stopped
	// during its last minutes starts over.
	MinRemaining time.Duration
}

// Player starts and stops movies on a Transport and records where they were
// left. It is meant to be driven from one goroutine.
type Player struct {
	transport Transport
	store     ResumeStorage
	opts      PlayerOptions
	log       *slog.Logger

	current string
}

// NewPlayer creates a Player.
func NewPlayer(transport Transport, store ResumeStorage, opts PlayerOptions, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MinResume <= 0 {
		opts.MinResume = DefaultMinResume
	}
	if opts.MinRemaining <= 0 {
		opts.MinRemaining = DefaultMinRemaining
	}
	return &Player{
		transport: transport,
		store:     store,
		opts:      opts,
		log:       logger.With("component", "player"),
	}
}

// CheckForResume reports whether path has a saved position worth resuming
// from, and returns it.
func (p *Player) CheckForResume(ctx context.Context, path string) (time.Duration, bool) {
	point, err := p.store.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, ErrResumeNotFound) {
			p.log.Warn("failed to read resume point", "path", path, "error", err)
		}
		return 0, false
	}

	if point.Position < p.opts.MinResume {
		p.log.Debug("resume point below minimum, restarting", "path", path, "position", point.Position)
		return 0, false
	}
	if point.Duration > 0 && point.Position > point.Duration-p.opts.MinRemaining {
		p.log.Debug("resume point near the end, restarting", "path", path, "position", point.Position)
		return 0, false
	}
	return point.Position, true
}

// Start plays path, seeking to the saved position when CheckForResume allows
// it. A movie already playing is stopped first. It reports whether playback
// resumed.
func (p *Player) Start(ctx context.Context, path, displayName string, encrypted bool) (bool, error) {
	if p.current != "" {
		if err := p.Stop(ctx); err != nil {
			p.log.Warn("failed to save previous movie", "path", p.current, "error", err)
		}
	}

	pos, resume := p.CheckForResume(ctx, path)
	if err := p.transport.Start(path, displayName, resume, encrypted); err != nil {
		return false, fmt.Errorf("failed to start %s: %w", path, err)
	}
	p.current = path

	if resume {
		p.transport.SetPosition(pos)
		p.log.Info("resuming movie", "path", path, "position", pos)
	}
	return resume, nil
}

// Stop halts the current movie and saves its position. A finished movie is
// saved at position 0 so it starts over next time. Nothing is saved when the
// transport reported an error.
func (p *Player) Stop(ctx context.Context) error {
	if p.current == "" {
		return ErrNotStarted
	}
	path := p.current
	p.current = ""

	point := ResumePoint{
		Position: p.transport.Position(),
		Duration: p.transport.Duration(),
	}
	finished := p.transport.Finished()
	failed := p.transport.HadError()
	p.transport.Stop()

	if failed {
		p.log.Warn("playback failed, resume point not saved", "path", path)
		return nil
	}
	if finished {
		point.Position = 0
	}

	if err := p.store.Save(ctx, path, point); err != nil {
		return err
	}
	p.log.Debug("saved resume point", "path", path, "position", point.Position, "duration", point.Duration)
	return nil
}

// Current returns the path being played, or "".
func (p *Player) Current() string {
	return p.current
}
