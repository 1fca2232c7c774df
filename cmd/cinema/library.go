package main

import (
	"context"

	"github.com/marco/cinema/internal/artwork"
	"github.com/marco/cinema/internal/catalog"
	"github.com/marco/cinema/internal/metrics"
)

// metadataExts are the companion files whose changes trigger a rescan.
var metadataExts = []string{catalog.SidecarExt, artwork.PosterExt}

func newPosterLoader(m *metrics.Metrics) *artwork.Loader {
	var thumbs artwork.Thumbnailer
	if cfg.Artwork.GenerateThumbnails {
		thumbs = artwork.NewFFmpegThumbnailer(artwork.FFmpegOptions{
			Path:     cfg.Artwork.FFmpegPath,
			Timeout:  cfg.Artwork.ThumbnailTimeout(),
			Attempts: cfg.Artwork.ThumbnailAttempts,
		}, logger)
	}

	return artwork.NewLoader(artwork.LoaderOptions{
		Thumbnailer:   thumbs,
		DefaultPoster: cfg.Artwork.DefaultPoster,
		Width:         cfg.Artwork.PosterWidth,
		Height:        cfg.Artwork.PosterHeight,
		Metrics:       m,
	}, logger)
}

func newCatalog(m *metrics.Metrics) *catalog.Catalog {
	return catalog.New(cfg.Storage, newPosterLoader(m),
		catalog.WithLogger(logger),
		catalog.WithMetrics(m),
	)
}

// loadCatalog builds and loads a catalog in one go.
func loadCatalog(ctx context.Context, m *metrics.Metrics) *catalog.Catalog {
	c := newCatalog(m)
	c.LoadLibrary(ctx)
	return c
}
