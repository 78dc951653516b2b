// librechat-picker - terminal model/agent picker for LibreChat-style catalogs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/announce"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/config"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/logging"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/model"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/selection"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/storage"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/ui/picker"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	catalogPath := flag.String("catalog", "", "path to catalog.toml (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("librechat-picker %s (%s)\n", Version, GitCommit)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}

	logFile, err := os.OpenFile(
		filepath.Join(config.Dir(), "picker.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600,
	)
	var log *logging.Logger
	if err == nil {
		defer logFile.Close()
		log = logging.New(logFile, cfg.LogLevel)
	} else {
		// No log file; stay silent rather than corrupting the TUI.
		log = logging.Nop()
	}
	log.Info().Str("version", Version).Msg("starting")

	if err := run(cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logging.Logger) error {
	var access catalog.AccessLevel
	if err := access.UnmarshalText([]byte(cfg.Access)); err != nil {
		return err
	}

	// Catalog: initial load plus live reload on file change.
	file, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	snap := file.Snapshot(access)

	// Storage tiers. A failing KV open degrades to cookie-only.
	kv, err := storage.OpenKV(cfg.Storage.KVPath)
	if err != nil {
		log.Warn().Err(err).Msg("kv store unavailable, cookie tier only")
		kv = nil
	} else {
		defer kv.Close()
	}
	jar := storage.NewCookieJar(cfg.Storage.CookiePath)
	defaults := storage.NewDefaultStore(kv, jar, log)

	lang, err := language.Parse(cfg.Language)
	if err != nil {
		lang = language.English
	}

	// Resume the most recent conversation; its last selection seeds the
	// engine. A fresh conversation starts empty.
	convStore, err := model.NewConversationStore(filepath.Join(config.Dir(), "conversations"))
	if err != nil {
		return err
	}
	conv, err := convStore.Latest()
	if err != nil {
		conv = model.NewConversation()
	}
	status := &announce.StatusSink{}

	engine := selection.New(selection.Options{
		Mention:       model.NewMention(conv),
		Seed:          conv.Seed(),
		Defaults:      defaults,
		AnnounceSink:  status,
		Language:      lang,
		DebounceDelay: time.Duration(cfg.UI.DebounceMs) * time.Millisecond,
		Log:           log,
	})
	defer engine.Close()
	engine.SetCatalog(snap)

	// Pin lipgloss to the detected terminal capabilities so adaptive
	// colors degrade consistently on limited terminals.
	profile := termenv.ColorProfile()
	lipgloss.SetColorProfile(profile)
	log.Debug().Str("color_profile", fmt.Sprint(profile)).Msg("terminal detected")

	ui := picker.New(engine, styles.NewTheme(), status, cfg.UI.MaxResults)
	program := tea.NewProgram(ui, tea.WithAltScreen())

	// The debouncer and the watcher run off the UI loop; both re-enter it
	// through program.Send.
	engine.Search().SetOnCommit(func(value string) {
		program.Send(picker.SearchCommittedMsg{Value: value})
	})

	watcher, err := catalog.NewWatcher(cfg.CatalogPath, access, log, func(s catalog.Snapshot) {
		program.Send(picker.CatalogMsg{Snapshot: s})
	})
	if err != nil {
		log.Warn().Err(err).Msg("catalog watching disabled")
	} else {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	if err := convStore.Save(conv); err != nil {
		log.Warn().Err(err).Msg("conversation not saved")
	}

	sel := engine.Selected()
	log.Info().
		Str("endpoint", sel.Endpoint).
		Str("model", sel.Model).
		Str("spec", sel.ModelSpec).
		Str("conversation", conv.ID).
		Msg("final selection")
	return nil
}
