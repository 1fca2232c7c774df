// Package config loads the YAML configuration of the cinema tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marco/cinema/internal/storage"
)

// Config represents the application configuration
type Config struct {
	Storage  storage.Locations `yaml:"storage"`
	Library  LibraryConfig     `yaml:"library"`
	Artwork  ArtworkConfig     `yaml:"artwork"`
	Playback PlaybackConfig    `yaml:"playback"`
	Logging  LoggingConfig     `yaml:"logging"`
	Metrics  MetricsConfig     `yaml:"metrics"`
}

// LibraryConfig holds rescan settings
type LibraryConfig struct {
	DebounceSeconds       int `yaml:"debounce_seconds"`
	RescanIntervalMinutes int `yaml:"rescan_interval_minutes"`
}

// ArtworkConfig holds poster settings
type ArtworkConfig struct {
	DefaultPoster           string `yaml:"default_poster"`
	GenerateThumbnails      bool   `yaml:"generate_thumbnails"`
	FFmpegPath              string `yaml:"ffmpeg_path"`
	ThumbnailTimeoutSeconds int    `yaml:"thumbnail_timeout_seconds"`
	ThumbnailAttempts       int    `yaml:"thumbnail_attempts"`
	PosterWidth             int    `yaml:"poster_width"`
	PosterHeight            int    `yaml:"poster_height"`
}

// PlaybackConfig holds resume settings
type PlaybackConfig struct {
	ResumeDB            string `yaml:"resume_db"`
	MinResumeSeconds    int    `yaml:"min_resume_seconds"`
	MinRemainingSeconds int    `yaml:"min_remaining_seconds"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Storage: storage.Locations{
			SDCard: "/sdcard",
		},
		Library: LibraryConfig{
			DebounceSeconds:       2,
			RescanIntervalMinutes: 30,
		},
		Artwork: ArtworkConfig{
			GenerateThumbnails:      true,
			FFmpegPath:              "ffmpeg",
			ThumbnailTimeoutSeconds: 30,
			ThumbnailAttempts:       2,
			PosterWidth:             228,
			PosterHeight:            344,
		},
		Playback: PlaybackConfig{
			ResumeDB:            "~/.cache/cinema/resume.db",
			MinResumeSeconds:    60,
			MinRemainingSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9464",
		},
	}
}

// Load reads the configuration file at path over the defaults. An empty path
// returns the defaults. Unset ${VAR} references and invalid values are
// reported together as a *ConfigError.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if err := cfg.expandPaths(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	content, missing := substituteEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
// and returns the names that were not set.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		missing = append(missing, name)
		return ""
	})
	return out, missing
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{
		&c.Storage.InternalRetail,
		&c.Storage.Retail,
		&c.Storage.SDCard,
		&c.Storage.ExternalSDCard,
		&c.Artwork.DefaultPoster,
		&c.Playback.ResumeDB,
		&c.Logging.File,
	} {
		expanded, err := ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Debounce is how long the watcher waits for a burst of changes to settle.
func (c LibraryConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceSeconds) * time.Second
}

// RescanInterval is the period of the full rescan; 0 disables it.
func (c LibraryConfig) RescanInterval() time.Duration {
	return time.Duration(c.RescanIntervalMinutes) * time.Minute
}

// ThumbnailTimeout bounds one ffmpeg run.
func (c ArtworkConfig) ThumbnailTimeout() time.Duration {
	return time.Duration(c.ThumbnailTimeoutSeconds) * time.Second
}

// MinResume is how far into a movie playback must get to be resumable.
func (c PlaybackConfig) MinResume() time.Duration {
	return time.Duration(c.MinResumeSeconds) * time.Second
}

// MinRemaining is how much must be left for a resume to be offered.
func (c PlaybackConfig) MinRemaining() time.Duration {
	return time.Duration(c.MinRemainingSeconds) * time.Second
}
