package artwork

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/marco/cinema/internal/metrics"
	"github.com/marco/cinema/internal/scanner"
)

// Poster display size.
const (
	PosterWidth  = 228
	PosterHeight = 344
)

// PosterExt is the extension of the poster image stored next to a movie.
const PosterExt = ".png"

//go:embed assets/default_poster.png
var defaultPosterPNG []byte

// ErrNoImage is returned when a file holds no usable image.
var ErrNoImage = errors.New("no usable image")

// Loader resolves the poster for a movie: the image next to the movie, then
// a generated thumbnail, then the bundled default.
type Loader struct {
	thumbnailer   Thumbnailer
	defaultPoster string
	width         int
	height        int
	metrics       *metrics.Metrics
	log           *slog.Logger
}

// LoaderOptions configures a Loader. Zero values pick defaults.
type LoaderOptions struct {
	// Thumbnailer may be nil to disable thumbnail generation.
	Thumbnailer Thumbnailer
	// DefaultPoster overrides the bundled placeholder image.
	DefaultPoster string
	Width         int
	Height        int
	Metrics       *metrics.Metrics
}

// NewLoader creates a poster loader.
func NewLoader(opts LoaderOptions, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Width <= 0 {
		opts.Width = PosterWidth
	}
	if opts.Height <= 0 {
		opts.Height = PosterHeight
	}
	return &Loader{
		thumbnailer:   opts.Thumbnailer,
		defaultPoster: opts.DefaultPoster,
		width:         opts.Width,
		height:        opts.Height,
		metrics:       opts.Metrics,
		log:           logger.With("component", "artwork"),
	}
}

// LoadPoster always returns a valid texture with mips, trilinear filtering
// and clamped addressing, whatever the source.
func (l *Loader) LoadPoster(ctx context.Context, moviePath string) *Texture {
	posterPath := scanner.SiblingPath(moviePath, PosterExt)

	tex, err := loadTexture(posterPath, SourceSidecar)
	if err != nil && l.thumbnailer != nil {
		if genErr := l.thumbnailer.CreateThumbnail(ctx, moviePath, posterPath, l.width, l.height); genErr != nil {
			l.log.Debug("thumbnail generation failed", "movie", moviePath, "error", genErr)
		} else {
			tex, err = loadTexture(posterPath, SourceThumbnail)
		}
	}

	if err != nil {
		l.log.Debug("using default poster", "movie", moviePath, "error", err)
		tex = l.loadDefault()
	}

	BuildMipmaps(tex)
	tex.MakeTrilinear()
	tex.MakeClamped()

	l.metrics.ArtworkLoaded(string(tex.Source))
	return tex
}

// loadDefault never fails: a configured override that cannot be read falls
// back to the embedded poster, and a broken embedded poster to a flat one.
func (l *Loader) loadDefault() *Texture {
	if l.defaultPoster != "" {
		tex, err := loadTexture(l.defaultPoster, SourceDefault)
		if err == nil {
			return tex
		}
		l.log.Warn("configured default poster unusable", "path", l.defaultPoster, "error", err)
	}

	tex, err := decodeTexture(defaultPosterPNG, SourceDefault)
	if err == nil {
		return tex
	}
	l.log.Error("embedded default poster unusable", "error", err)

	return NewTexture(solid(l.width, l.height, color.RGBA{R: 32, G: 32, B: 38, A: 255}), SourceDefault)
}

func loadTexture(path string, src Source) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tex, err := decodeTexture(data, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tex, nil
}

func decodeTexture(data []byte, src Source) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrNoImage
	}
	return NewTexture(img, src), nil
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}
