// Package storage describes the physical storage roots a device exposes
// and resolves logical library folders against them.
package storage

import (
	"path/filepath"
)

// Locations holds the four storage roots, any of which may be empty when the
// device does not have it mounted.
type Locations struct {
	InternalRetail string `yaml:"internal_retail"`
	Retail         string `yaml:"retail"`
	SDCard         string `yaml:"sdcard"`
	ExternalSDCard string `yaml:"external_sdcard"`
}

// Roots returns the configured roots in search order, skipping empty ones.
func (l Locations) Roots() []string {
	var roots []string
	for _, r := range []string{l.InternalRetail, l.Retail, l.SDCard, l.ExternalSDCard} {
		if r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}

// Resolve joins a logical folder name such as "Oculus/Movies" onto every
// configured root, in search order.
func (l Locations) Resolve(name string) []string {
	roots := l.Roots()
	dirs := make([]string, 0, len(roots))
	for _, r := range roots {
		dirs = append(dirs, filepath.Join(r, filepath.FromSlash(name)))
	}
	return dirs
}

// ResolveAll resolves each name in order. The result for names[0] comes
// first, each expanded over all roots.
func (l Locations) ResolveAll(names []string) []string {
	var dirs []string
	for _, n := range names {
		dirs = append(dirs, l.Resolve(n)...)
	}
	return dirs
}
