package scanner

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Scanner walks library directories looking for playable video files
type Scanner struct {
	extensions []string
	logger     *slog.Logger
}

// New creates a Scanner matching the given extensions (with leading dot,
// compared case-insensitively). A nil logger falls back to slog.Default().
func New(extensions []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		extensions: extensions,
		logger:     logger,
	}
}

// IsMediaFile checks if a filename has a supported video extension
func (s *Scanner) IsMediaFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, validExt := range s.extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// ScanDirectory recursively collects the full path of every movie file under
// dir. Directories that cannot be opened and entries that cannot be stat'ed
// are logged and skipped; scanning never fails as a whole. A directory
// reachable through several symlinks is listed once per link.
func (s *Scanner) ScanDirectory(dir string) []string {
	var movies []string
	s.walk(dir, make(map[string]bool), &movies)
	return movies
}

// ScanAll scans every directory in order and returns the combined results.
// The same file reachable through two directories is reported twice.
func (s *Scanner) ScanAll(directories []string) []string {
	var all []string
	for _, dir := range directories {
		all = append(all, s.ScanDirectory(dir)...)
	}
	return all
}

func (s *Scanner) walk(dir string, ancestors map[string]bool, movies *[]string) {
	// Symlinked directories are followed. Only a link back into the current
	// chain of parents is a cycle; sibling links to one target are all walked.
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if ancestors[real] {
			s.logger.Debug("skipping symlink cycle", "path", dir, "target", real)
			return
		}
		ancestors[real] = true
		defer delete(ancestors, real)
	}

	s.logger.Debug("scanning directory", "path", dir)
	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		s.logger.Debug("skipping missing directory", "path", dir)
		return
	case err != nil && len(entries) == 0:
		s.logger.Debug("skipping unreadable directory", "path", dir, "error", err)
		return
	case err != nil:
		s.logger.Warn("directory read incomplete", "path", dir, "read", len(entries), "error", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}

		full := filepath.Join(dir, name)

		// os.Stat follows symlinks, matching what the device's media
		// scanner sees.
		info, err := os.Stat(full)
		if err != nil {
			s.logger.Warn("stat failed, skipping entry", "path", full, "error", err)
			continue
		}

		if info.IsDir() {
			s.walk(full, ancestors, movies)
			continue
		}

		if IsJunkFile(name) {
			continue
		}

		if s.IsMediaFile(name) {
			s.logger.Debug("adding movie", "path", full)
			*movies = append(*movies, full)
		}
	}
}
