// Package catalog builds the in-memory list of playable titles from the
// device's storage and serves it by category.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/marco/cinema/internal/artwork"
	"github.com/marco/cinema/internal/metrics"
	"github.com/marco/cinema/internal/scanner"
	"github.com/marco/cinema/internal/storage"
)

// PosterLoader provides the poster for a movie. It must always return a
// valid texture.
type PosterLoader interface {
	LoadPoster(ctx context.Context, moviePath string) *artwork.Texture
}

// Catalog owns the movie entries found by the last LoadLibrary.
//
// A Catalog is not safe for concurrent use: LoadLibrary must complete before
// MovieList is called, and two loads must not overlap.
type Catalog struct {
	locations  storage.Locations
	searchDirs []string
	scanner    *scanner.Scanner
	posters    PosterLoader
	metrics    *metrics.Metrics
	log        *slog.Logger

	movies []*MovieEntry
}

// Option customises a Catalog.
type Option func(*Catalog)

// WithMetrics records load statistics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates an empty catalog over the given storage roots.
func New(locations storage.Locations, posters PosterLoader, opts ...Option) *Catalog {
	c := &Catalog{
		locations:  locations,
		searchDirs: scanner.DefaultSearchDirs,
		posters:    posters,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "catalog")
	c.scanner = scanner.New(scanner.SupportedExtensions, c.log)
	return c
}

// LoadLibrary scans every search folder on every storage root and replaces
// the catalog contents with one entry per movie file found. Scan problems
// are logged and never returned; callers inspect Len instead.
func (c *Catalog) LoadLibrary(ctx context.Context) {
	start := time.Now()

	dirs := c.locations.ResolveAll(c.searchDirs)
	files := c.scanner.ScanAll(dirs)
	c.log.Info("movies scanned",
		"count", len(files),
		"seconds", time.Since(start).Seconds(),
	)

	movies := make([]*MovieEntry, 0, len(files))
	for _, path := range files {
		e := newEntry(path)
		c.readMetadata(e)
		c.loadPoster(ctx, e)
		movies = append(movies, e)
	}

	c.Release()
	c.movies = movies

	elapsed := time.Since(start)
	c.log.Info("movie panels loaded",
		"count", len(movies),
		"seconds", elapsed.Seconds(),
	)
	c.metrics.ObserveLoad(elapsed, len(files), c.countByCategory())
}

func (c *Catalog) readMetadata(e *MovieEntry) {
	sc, err := ReadSidecar(e.Path)
	if err != nil {
		c.log.Warn("error loading metadata", "path", SidecarPath(e.Path), "error", err)
		c.metrics.SidecarError()
		return
	}
	if sc == nil {
		return
	}
	sc.Apply(e)
	c.log.Debug("loaded metadata", "path", SidecarPath(e.Path))
}

func (c *Catalog) loadPoster(ctx context.Context, e *MovieEntry) {
	tex := c.posters.LoadPoster(ctx, e.Path)
	e.Poster = tex
	e.PosterWidth = tex.Width
	e.PosterHeight = tex.Height
	e.PosterSource = tex.Source
}

// Describe builds the entry for a single movie file, applying its metadata
// but not loading artwork. The catalog contents are not touched.
func (c *Catalog) Describe(path string) *MovieEntry {
	e := newEntry(path)
	c.readMetadata(e)
	return e
}

// MovieList returns the entries in category, in catalog order. The entries
// belong to the catalog and stay valid until the next LoadLibrary.
func (c *Catalog) MovieList(category Category) []*MovieEntry {
	var result []*MovieEntry
	for _, m := range c.movies {
		if m.Category == category {
			result = append(result, m)
		}
	}
	return result
}

// Movies returns every entry in catalog order.
func (c *Catalog) Movies() []*MovieEntry {
	return append([]*MovieEntry(nil), c.movies...)
}

// Lookup finds the entry for a path.
func (c *Catalog) Lookup(path string) (*MovieEntry, bool) {
	for _, m := range c.movies {
		if m.Path == path {
			return m, true
		}
	}
	return nil, false
}

// Len returns the number of entries loaded.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Release frees the artwork of every entry and empties the catalog.
func (c *Catalog) Release() {
	for _, m := range c.movies {
		m.Poster.Release()
	}
	c.movies = nil
}

func (c *Catalog) countByCategory() map[string]int {
	counts := make(map[string]int, len(Categories))
	for _, cat := range Categories {
		counts[cat.String()] = 0
	}
	for _, m := range c.movies {
		counts[m.Category.String()]++
	}
	return counts
}
