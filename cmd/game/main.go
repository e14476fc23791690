package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tatianab/persona-chronicles/internal/config"
	"github.com/tatianab/persona-chronicles/internal/content"
	"github.com/tatianab/persona-chronicles/internal/engine"
	"github.com/tatianab/persona-chronicles/internal/models"
	"github.com/tatianab/persona-chronicles/internal/provider"
	"github.com/tatianab/persona-chronicles/internal/store"
	"github.com/tatianab/persona-chronicles/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	models.SaveDir = cfg.SaveDir

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := zerolog.New(logFile).With().Timestamp().Logger()

	settings, err := provider.LoadSettings(cfg.SettingsPath)
	if err != nil {
		fmt.Printf("Error loading provider settings: %v\n", err)
		os.Exit(1)
	}
	config.ApplyEnv(settings)

	gateway := provider.NewGateway(cfg.RequestTimeout, log)
	eng := engine.New(gateway, log)
	st := store.New(eng, settings, true, log)

	if err := tui.Run(st, content.Characters()); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
