// sahayak TUI - A terminal client for the Kisan Yojana farmer-scheme assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishisetu/sahayak-tui/internal/api"
	"github.com/krishisetu/sahayak-tui/internal/config"
	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/location"
	"github.com/krishisetu/sahayak-tui/internal/orchestrator"
	"github.com/krishisetu/sahayak-tui/internal/ui/chat"
	"github.com/krishisetu/sahayak-tui/internal/ui/styles"
	"github.com/krishisetu/sahayak-tui/internal/voice"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		flagVersion = flag.Bool("version", false, "print version and exit")
		flagLang    = flag.String("lang", "", "conversation language (en, hi, mr, ta, te, pa, haryanvi)")
		flagURL     = flag.String("service-url", "", "assistant service base URL")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Printf("sahayak %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sahayak: %v\n", err)
		os.Exit(1)
	}
	if *flagURL != "" {
		cfg.Service.BaseURL = *flagURL
	}
	if *flagLang != "" {
		cfg.UI.Language = *flagLang
		if _, ok := locale.Parse(*flagLang); !ok {
			fmt.Fprintf(os.Stderr, "sahayak: unsupported language %q\n", *flagLang)
			os.Exit(1)
		}
	}

	closeLog := setupLogging()
	defer closeLog()

	styles.Apply(cfg.UI.Theme)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Service.BaseURL,
		Timeout: time.Duration(cfg.Service.TimeoutSecs) * time.Second,
	})

	recorder := voice.NewController(
		func() voice.Capture { return voice.NewExecCapture(cfg.Audio.RecordCommand) },
		client.Transcribe,
	)
	bridge := location.NewBridge(
		location.NewHTTPProvider(cfg.Geo.Endpoint),
		client.WeatherSchemes,
	)
	player := orchestrator.NewExecPlayer(cfg.Audio.PlayCommand, cfg.Service.BaseURL)

	orch := orchestrator.New(orchestrator.Options{
		Chat:     client,
		Language: cfg.Language(),
		Recorder: recorder,
		Bridge:   bridge,
		Player:   player,
	})

	program := tea.NewProgram(chat.New(orch), tea.WithAltScreen())

	stopWatch := watchConfig(program)
	defer stopWatch()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sahayak: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends slog output to a file; the terminal belongs to the
// TUI. Returns a cleanup func.
func setupLogging() func() {
	dir, err := config.ConfigDir()
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		return func() {}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		return func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "sahayak.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { f.Close() }
}

// watchConfig hot-reloads the config file and forwards updates to the
// running program. Returns a cleanup func.
func watchConfig(program *tea.Program) func() {
	path, err := config.ConfigPath()
	if err != nil {
		return func() {}
	}
	watcher, err := config.Watch(path)
	if err != nil {
		slog.Debug("config watch disabled", "error", err)
		return func() {}
	}

	go func() {
		for cfg := range watcher.Updates() {
			program.Send(chat.ConfigReloadedMsg{Config: cfg})
		}
	}()
	return func() { watcher.Close() }
}
