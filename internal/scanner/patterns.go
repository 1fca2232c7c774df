package scanner

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the video container extensions the player can open.
var SupportedExtensions = []string{
	".mp4",
	".m4v",
	".3gp",
	".3g2",
	".ts",
	".webm",
	".mkv",
	".wmv",
	".asf",
	".avi",
	".flv",
}

// DefaultSearchDirs are the logical library folders, in scan order.
var DefaultSearchDirs = []string{
	"DCIM",
	"Movies",
	"Oculus/Movies",
}

// junkPrefix marks AppleDouble resource-fork files that macOS leaves behind
// when movies are copied onto the device.
const junkPrefix = "._"

// IsJunkFile reports whether a file name is an AppleDouble resource fork.
func IsJunkFile(name string) bool {
	return strings.HasPrefix(name, junkPrefix)
}

// TitleFromPath returns the display title derived from a file path: the base
// name without its extension, with underscores turned into spaces.
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(name, "_", " ")
}

// SiblingPath swaps the extension of path for ext (which includes the dot).
func SiblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
