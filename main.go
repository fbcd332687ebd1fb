// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gopxl/mainthread/v2"

	"goportal/config"
	"goportal/filesystem"
	"goportal/world"
)

var (
	configFile = flag.String("config", "", "config file (.toml, .yaml)")
	levelName  = flag.String("level", "", "level lump to load, overrides the config")
	headless   = flag.Bool("headless", false, "render against the recording device without a window")
	frames     = flag.Int("frames", 0, "number of frames to render, 0 runs until quit (1 when headless)")
	mkdemo     = flag.String("mkdemo", "", "write the demo pak to this file and exit")
	execText   = flag.String("exec", "", "console commands to run, separated by ';'")
	watch      = flag.Bool("watch", true, "apply cvars of the config file when it changes")
	debug      = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if err := run(); err != nil {
		slog.Error("portalview", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return cfg, err
		}
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	return cfg, nil
}

func run() error {
	if *mkdemo != "" {
		return writeDemoPak(*mkdemo)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Level == "" {
		dir, err := os.MkdirTemp("", "portalview")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		if err := writeDemoPak(filepath.Join(dir, "pak0.pak")); err != nil {
			return err
		}
		cfg.BasePath = dir
		cfg.GameDir = ""
		cfg.Level = demoLevelName
	}
	filesystem.UseBaseDir(cfg.BasePath)
	if cfg.GameDir != "" {
		filesystem.AddGameDir(cfg.GameDir)
	}
	// unknown cvars are logged by Apply
	_ = cfg.Apply()

	level, err := world.Load(cfg.Level)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s: %d rooms, %d portals, %d surfaces\n", level.Name, len(level.Rooms), len(level.Portals), len(level.Surfaces))

	var w *config.Watcher
	if *configFile != "" && *watch {
		if w, err = config.Watch(*configFile); err != nil {
			slog.Warn("Not watching config", slog.Any("error", err))
		} else {
			defer w.Close()
		}
	}

	if *headless {
		return runHeadless(cfg, level, w)
	}
	var rerr error
	mainthread.Run(func() {
		rerr = runWindow(cfg, level, w)
	})
	return rerr
}

// pollConfig applies the cvars of a changed config file. Everything else
// needs a restart.
func pollConfig(w *config.Watcher) {
	if w == nil || !w.Poll() {
		return
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("Could not reload config", slog.Any("error", err))
		return
	}
	_ = cfg.Apply()
	slog.Info("Reloaded config", slog.String("file", *configFile))
}
