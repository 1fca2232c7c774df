package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the frame layout of a video.
type Format int

const (
	FormatUnknown Format = iota
	Format2D
	FormatStereoLeftRight
	FormatStereoLeftRightFull
	FormatStereoTopBottom
	FormatStereoTopBottomFull
)

var formatNames = map[Format]string{
	FormatUnknown:             "unknown",
	Format2D:                  "2d",
	FormatStereoLeftRight:     "3d_lr",
	FormatStereoLeftRightFull: "3d_lr_full",
	FormatStereoTopBottom:     "3d_tb",
	FormatStereoTopBottomFull: "3d_tb_full",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// IsStereo reports whether the format carries two views.
func (f Format) IsStereo() bool {
	return f != FormatUnknown && f != Format2D
}

// MarshalYAML writes the format name.
func (f Format) MarshalYAML() (any, error) {
	return f.String(), nil
}

// FormatFromString maps a sidecar format token, compared case-insensitively,
// to a Format. Unrecognised tokens map to FormatUnknown.
func FormatFromString(s string) Format {
	switch strings.ToUpper(s) {
	case "2D":
		return Format2D
	case "3D", "3DLR":
		return FormatStereoLeftRight
	case "3DLRF":
		return FormatStereoLeftRightFull
	case "3DTB":
		return FormatStereoTopBottom
	case "3DTBF":
		return FormatStereoTopBottomFull
	}
	return FormatUnknown
}

// Category groups titles in the selection menu.
type Category int

const (
	CategoryMyVideos Category = iota
	CategoryTrailers
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryMyVideos, CategoryTrailers}

func (c Category) String() string {
	switch c {
	case CategoryMyVideos:
		return "my_videos"
	case CategoryTrailers:
		return "trailers"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalYAML writes the category name.
func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

var (
	_ yaml.Marshaler = Format(0)
	_ yaml.Marshaler = Category(0)
)

// CategoryFromString maps a sidecar category token, compared
// case-insensitively, to a Category. Anything but "trailers" is MyVideos.
func CategoryFromString(s string) Category {
	if strings.ToUpper(s) == "TRAILERS" {
		return CategoryTrailers
	}
	return CategoryMyVideos
}

// ParseCategory accepts the names produced by Category.String as well as the
// sidecar tokens. Unlike CategoryFromString it rejects unknown input.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "my_videos", "myvideos", "my-videos", "videos":
		return CategoryMyVideos, nil
	case "trailers":
		return CategoryTrailers, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
