package artwork

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// BuildMipmaps replaces any existing mip levels with a full chain halving
// each dimension (rounding down, never below 1) until a 1x1 level.
func BuildMipmaps(t *Texture) {
	if !t.Valid() {
		return
	}

	base := t.Levels[0]
	levels := []*image.RGBA{base}

	w, h := base.Bounds().Dx(), base.Bounds().Dy()
	prev := base
	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(next, next.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		levels = append(levels, next)
		prev = next
	}

	t.Levels = levels
}

// MipCount returns the number of levels a full chain has for a w x h image.
func MipCount(w, h int) int {
	n := 1
	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)
		n++
	}
	return n
}
