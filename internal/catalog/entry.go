package catalog

import (
	"strings"

	"github.com/marco/cinema/internal/artwork"
	"github.com/marco/cinema/internal/scanner"
)

// MovieEntry is one playable title. Entries are built during LoadLibrary and
// not modified afterwards.
type MovieEntry struct {
	Path                  string           `yaml:"path"`
	Title                 string           `yaml:"title"`
	Format                Format           `yaml:"format"`
	Is3D                  bool             `yaml:"is_3d"`
	Category              Category         `yaml:"category"`
	Theater               string           `yaml:"theater,omitempty"`
	AllowTheaterSelection bool             `yaml:"allow_theater_selection"`
	Encrypted             bool             `yaml:"encrypted"`
	Poster                *artwork.Texture `yaml:"-"`
	PosterWidth           int              `yaml:"poster_width"`
	PosterHeight          int              `yaml:"poster_height"`
	PosterSource          artwork.Source   `yaml:"poster_source"`
}

// newEntry builds an entry with the defaults used when there is no metadata.
func newEntry(path string) *MovieEntry {
	category, is3D := ClassifyPath(path)
	return &MovieEntry{
		Path:     path,
		Title:    scanner.TitleFromPath(path),
		Format:   FormatUnknown,
		Is3D:     is3D,
		Category: category,
		// TODO: decide whether trailers should pin their theater; every
		// category allows selection today.
		AllowTheaterSelection: true,
	}
}

// ClassifyPath derives the category and the 3D hint from plain substring
// matches on the path. "/DCIM/" wins over "/Trailers/".
func ClassifyPath(path string) (category Category, is3D bool) {
	p := toSlash(path)
	is3D = strings.Contains(p, "/3D/")

	switch {
	case strings.Contains(p, "/DCIM/"):
		category = CategoryMyVideos
	case strings.Contains(p, "/Trailers/"):
		category = CategoryTrailers
	default:
		category = CategoryMyVideos
	}
	return category, is3D
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
