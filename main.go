// Package main provides the entry point for wavesearch.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesearch/internal/app"
	"github.com/llehouerou/wavesearch/internal/config"
	"github.com/llehouerou/wavesearch/internal/icons"
	"github.com/llehouerou/wavesearch/internal/playlist"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "wavesearch",
		Short: "Search the local library, Last.fm, MusicBrainz and radio streams at once",
		Long: `wavesearch aggregates results from several music providers into one
ranked, deduplicated list and adds what you pick to a play queue.

Commands:
  search    Run one query without the interface and print the results
  index     Scan the library sources into the local index`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: XDG config locations)")

	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newIndexCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// openLogger sends structured logs to the configured file so they never
// draw over the terminal interface.
func openLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	path, err := cfg.LogFile()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	return logger, f, nil
}

// setup loads the config, opens the log and builds the services every
// command needs.
func setup(cmd *cobra.Command) (*config.Config, *app.Services, *slog.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, logFile, err := openLogger(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	slog.SetDefault(logger)
	icons.Init(cfg.Icons)

	svc, err := app.Build(cmd.Context(), cfg, logger)
	if err != nil {
		logFile.Close()
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			logger.Error("closing services", "error", err)
		}
		logFile.Close()
	}
	return cfg, svc, logger, cleanup, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, svc, logger, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	queue := playlist.NewQueue()
	queue.PlayOnActivate = cfg.PlayOnActivate()

	m, err := app.New(app.Deps{
		Engine:   svc.Engine,
		Settings: cfg.SearchSettings(),
		State:    svc.State,
		Queue:    queue,
		Reload:   loadConfig,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Registered after the model exists so each provider reaches the
	// search as an event.
	if err := svc.RegisterProviders(cfg); err != nil {
		if !errors.Is(err, app.ErrNoProviders) {
			return err
		}
		logger.Warn("every provider is disabled; enable one with alt+N")
	}

	logger.Info("wavesearch started")
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
