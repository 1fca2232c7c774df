package artwork

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/marco/cinema/internal/scanner"
)

// PrefetchResult holds the outcome of preparing the poster for one movie.
type PrefetchResult struct {
	Movie   string
	Poster  string
	Skipped bool // a poster already existed or another worker owns it
	Err     error
}

// posterGuard hands each poster path to exactly one worker. The same movie
// can be listed twice when storage roots overlap.
type posterGuard struct {
	mu    sync.Mutex
	paths map[string]bool
}

func newPosterGuard() *posterGuard {
	return &posterGuard{paths: make(map[string]bool)}
}

// tryClaim returns true for the first caller with a given path.
func (g *posterGuard) tryClaim(path string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paths[path] {
		return false
	}
	g.paths[path] = true
	return true
}

// GenerateMissing renders a poster next to every movie that has none,
// fanning the thumbnail runs out across workers. processed is incremented
// after each movie completes so callers can report progress. Results are
// returned in no guaranteed order.
func GenerateMissing(
	ctx context.Context,
	t Thumbnailer,
	movies []string,
	width, height, workers int,
	processed *atomic.Int64,
) []PrefetchResult {
	if workers <= 0 {
		workers = 1
	}
	if processed == nil {
		processed = new(atomic.Int64)
	}

	guard := newPosterGuard()
	jobs := make(chan string, len(movies))
	results := make(chan PrefetchResult, len(movies))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for movie := range jobs {
				results <- prefetchOne(ctx, t, guard, movie, width, height)
				processed.Add(1)
			}
		}()
	}

	for _, movie := range movies {
		jobs <- movie
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []PrefetchResult
	for r := range results {
		out = append(out, r)
	}
	return out
}

func prefetchOne(ctx context.Context, t Thumbnailer, guard *posterGuard, movie string, width, height int) PrefetchResult {
	poster := scanner.SiblingPath(movie, PosterExt)
	res := PrefetchResult{Movie: movie, Poster: poster}

	if !guard.tryClaim(poster) {
		res.Skipped = true
		return res
	}
	if _, err := os.Stat(poster); err == nil {
		res.Skipped = true
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	res.Err = t.CreateThumbnail(ctx, movie, poster, width, height)
	return res
}
