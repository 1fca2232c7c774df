// Package playback drives a movie transport and remembers where each movie
// was left so it can be resumed.
package playback

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -destination=mocks/transport.go -package=mocks github.com/marco/cinema/internal/playback Transport

// Transport controls playback of one movie at a time. Implementations are
// constructed once at startup and handed to whoever needs them.
type Transport interface {
	// Init prepares the transport. It must succeed before Start is called.
	Init(ctx context.Context) error
	// Shutdown stops any playback and releases the transport.
	Shutdown() error

	// Start begins playing path from the beginning. resume tells the
	// transport the caller intends to seek to a saved position.
	Start(path, displayName string, resume, encrypted bool) error
	Stop()
	Pause()
	Resume()

	Position() time.Duration
	SetPosition(pos time.Duration)
	SeekDelta(delta time.Duration)
	// Duration is the length of the current movie, or 0 when unknown.
	Duration() time.Duration

	Finished() bool
	HadError() bool
}

var (
	// ErrNotInitialized is returned by Start before a successful Init.
	ErrNotInitialized = errors.New("transport not initialized")
	// ErrNotStarted is returned when stopping with nothing playing.
	ErrNotStarted = errors.New("no movie playing")
)
