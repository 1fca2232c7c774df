package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marco/cinema/internal/config"
	"github.com/marco/cinema/internal/logging"
)

var version = "dev"

var (
	configPath string
	verbose    bool

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "cinema",
	Short: "Movie library for the VR cinema",
	Long: `cinema - movie library for the VR cinema

Scans the device storage for movies, reads their metadata and posters,
and plays them with resume support.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			c.Logging.Level = "debug"
		}
		cfg = c
		logger, logCloser = logging.New(c.Logging, cmd.ErrOrStderr())
		slog.SetDefault(logger)
		logger.Debug("configuration loaded", "path", configPath, "roots", c.Storage.Roots())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cinema {{.Version}}\n")
}
