package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ghostrun/logging"
)

func main() {
	var cfg Config
	flag.StringVar(&cfg.PlayerPath, "player", "player.yaml", "player prefab (prefabs/ name or path)")
	flag.StringVar(&cfg.LevelPath, "level", "level_training.yaml", "level prefab (prefabs/ name or path)")
	flag.StringVar(&cfg.ScriptPath, "script", "", "drive the player from a tengo script instead of the keyboard")
	flag.BoolVar(&cfg.Debug, "debug", true, "show the contact and ability overlay")
	flag.BoolVar(&cfg.Watch, "watch", true, "reload prefabs and scripts when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "console, text or json")
	flag.Parse()

	if err := logging.Init(logging.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("ghostrun")

	game, err := NewGame(cfg, logging.L())
	if err != nil {
		slog.Error("failed to start", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("game stopped", "err", err)
		game.Close()
		os.Exit(1)
	}
}
