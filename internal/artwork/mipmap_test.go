package artwork

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMipCount(t *testing.T) {
	testCases := []struct {
		w, h     int
		expected int
	}{
		{1, 1, 1},
		{2, 2, 2},
		{4, 1, 3},
		{5, 3, 3},
		{PosterWidth, PosterHeight, 9},
		{256, 256, 9},
	}

	for _, tc := range testCases {
		if got := MipCount(tc.w, tc.h); got != tc.expected {
			t.Errorf("MipCount(%d, %d) = %d, want %d", tc.w, tc.h, got, tc.expected)
		}
	}
}

func TestBuildMipmaps_HalvesDownToOnePixel(t *testing.T) {
	tex := NewTexture(image.NewRGBA(image.Rect(0, 0, 5, 3)), SourceSidecar)

	BuildMipmaps(tex)

	require.Len(t, tex.Levels, 3)
	assert.Equal(t, image.Rect(0, 0, 5, 3), tex.Levels[0].Bounds())
	assert.Equal(t, image.Rect(0, 0, 2, 1), tex.Levels[1].Bounds())
	assert.Equal(t, image.Rect(0, 0, 1, 1), tex.Levels[2].Bounds())
}

func TestBuildMipmaps_IsIdempotent(t *testing.T) {
	tex := NewTexture(image.NewRGBA(image.Rect(0, 0, 8, 8)), SourceSidecar)

	BuildMipmaps(tex)
	BuildMipmaps(tex)

	assert.Len(t, tex.Levels, 4)
}

func TestBuildMipmaps_AveragesColour(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 200
		img.Pix[i+3] = 255
	}
	tex := NewTexture(img, SourceSidecar)

	BuildMipmaps(tex)

	require.Len(t, tex.Levels, 2)
	assert.Equal(t, uint8(200), tex.Levels[1].Pix[0])
	assert.Equal(t, uint8(255), tex.Levels[1].Pix[3])
}

func TestBuildMipmaps_ReleasedTextureIsIgnored(t *testing.T) {
	tex := NewTexture(image.NewRGBA(image.Rect(0, 0, 4, 4)), SourceSidecar)
	tex.Release()

	assert.NotPanics(t, func() { BuildMipmaps(tex) })
	assert.False(t, tex.Valid())
}
