package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"

	"github.com/mindflowhq/mindflow/internal/agenda"
	"github.com/mindflowhq/mindflow/internal/assist"
	"github.com/mindflowhq/mindflow/internal/engine"
	"github.com/mindflowhq/mindflow/internal/storage"
	"github.com/mindflowhq/mindflow/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mindflow failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := update.LoadRuntimeConfig(os.Getenv("MINDFLOW_CONFIG"))
	if err != nil {
		return err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", cfg.LogPath, err)
	}
	defer logFile.Close()
	logger := slog.New(tint.NewHandler(logFile, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}))

	store, err := storage.OpenSQLite(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	state := store.Load(context.Background())
	eng := engine.New(state, store, logger)

	var gateway assist.Gateway
	gemini := assist.NewGemini(assist.WithLogger(logger), geminiModelOption(cfg.GeminiModel))
	if gemini.Configured() {
		gateway = gemini
		logger.Info("assist gateway enabled")
	} else {
		gateway = assist.Disabled{}
		logger.Info("no API key found, assist gateway disabled")
	}

	notifier := agenda.NewNotifier(cfg.AlertBuffer)
	notifier.Start()
	defer notifier.Stop()
	notifier.SyncState(state, time.Now())

	program := tea.NewProgram(update.NewModel(eng, gateway, notifier, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func geminiModelOption(model string) assist.Option {
	if model == "" {
		return assist.WithModel(assist.DefaultModel)
	}
	return assist.WithModel(model)
}
