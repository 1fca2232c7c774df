// Package artwork loads poster images for catalog entries and prepares them
// for display: a full mip chain, trilinear filtering and clamped addressing.
package artwork

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Filter is the sampling mode a renderer should use for a texture.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterTrilinear
)

// Wrap is the addressing mode outside the [0,1] texture range.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Source records where a poster image came from.
type Source string

const (
	SourceSidecar   Source = "sidecar"
	SourceThumbnail Source = "thumbnail"
	SourceDefault   Source = "default"
)

// Texture is a decoded poster ready for upload. Levels[0] is the full
// resolution image; further levels are present after BuildMipmaps.
type Texture struct {
	Levels []*image.RGBA
	Width  int
	Height int
	Filter Filter
	Wrap   Wrap
	Source Source
}

// NewTexture converts img to RGBA and wraps it as a single-level texture.
func NewTexture(img image.Image, src Source) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	}
	return &Texture{
		Levels: []*image.RGBA{rgba},
		Width:  b.Dx(),
		Height: b.Dy(),
		Filter: FilterLinear,
		Wrap:   WrapRepeat,
		Source: src,
	}
}

// MakeTrilinear selects trilinear filtering. Without mips it degrades to
// linear sampling in the renderer, so callers build the mip chain first.
func (t *Texture) MakeTrilinear() {
	t.Filter = FilterTrilinear
}

// MakeClamped selects clamp-to-edge addressing.
func (t *Texture) MakeClamped() {
	t.Wrap = WrapClamp
}

// Valid reports whether the texture holds image data.
func (t *Texture) Valid() bool {
	return t != nil && len(t.Levels) > 0 && t.Levels[0] != nil
}

// Release drops the pixel data. The texture is invalid afterwards.
func (t *Texture) Release() {
	if t == nil {
		return
	}
	t.Levels = nil
}
