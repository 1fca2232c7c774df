package config

import (
	"fmt"
	"net"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if len(c.Storage.Roots()) == 0 {
		errs = append(errs, "storage: at least one storage root must be configured")
	}

	if c.Library.DebounceSeconds < 0 {
		errs = append(errs, fmt.Sprintf("library.debounce_seconds: must not be negative, got %d", c.Library.DebounceSeconds))
	}
	if c.Library.RescanIntervalMinutes < 0 {
		errs = append(errs, fmt.Sprintf("library.rescan_interval_minutes: must not be negative, got %d", c.Library.RescanIntervalMinutes))
	}

	if c.Artwork.PosterWidth <= 0 || c.Artwork.PosterHeight <= 0 {
		errs = append(errs, fmt.Sprintf("artwork.poster_width/poster_height: must be positive, got %dx%d", c.Artwork.PosterWidth, c.Artwork.PosterHeight))
	}
	if c.Artwork.GenerateThumbnails {
		if c.Artwork.FFmpegPath == "" {
			errs = append(errs, "artwork.ffmpeg_path: required when generate_thumbnails is set")
		}
		if c.Artwork.ThumbnailTimeoutSeconds <= 0 {
			errs = append(errs, "artwork.thumbnail_timeout_seconds: must be positive")
		}
		if c.Artwork.ThumbnailAttempts < 1 {
			errs = append(errs, "artwork.thumbnail_attempts: must be at least 1")
		}
	}

	if c.Playback.ResumeDB == "" {
		errs = append(errs, "playback.resume_db: required")
	}
	if c.Playback.MinResumeSeconds < 0 || c.Playback.MinRemainingSeconds < 0 {
		errs = append(errs, "playback.min_resume_seconds/min_remaining_seconds: must not be negative")
	}

	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level: must be one of debug, info, warn, error; got %q", c.Logging.Level))
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB <= 0 {
		errs = append(errs, "logging.max_size_mb: must be positive when logging.file is set")
	}

	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Listen); err != nil {
			errs = append(errs, fmt.Sprintf("metrics.listen: %v", err))
		}
	}

	return errs
}
