package main

import (
	"log/slog"
	"os"

	"kikehq/internal/cli"
	"kikehq/internal/config"
)

func main() {
	level := slog.LevelInfo
	if cfg, err := config.Load(); err == nil {
		level = cfg.SlogLevel()
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(cli.Execute())
}
