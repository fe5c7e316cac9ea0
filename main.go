// Package main provides the entry point for the Algorithm Visualizer application.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"algo-visualizer/internal/app"
	"algo-visualizer/internal/config"
	"algo-visualizer/internal/logging"
	"algo-visualizer/internal/version"
	"algo-visualizer/internal/vision"
	"algo-visualizer/ui/mainwindow"
	"algo-visualizer/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/gogpu/gg"
)

const appID = "io.github.algo-visualizer"

func main() {
	configPath := flag.String("config", config.DefaultFileName, "Path to configuration.toml")
	image := flag.String("image", "", "Sample image, overrides image.test_image")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := run(*configPath, *image); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, imagePath string) error {
	cfg, err := config.Load(configPath)
	missing := errors.Is(err, config.ErrNotFound)
	if err != nil && !missing {
		return err
	}

	logCfg := cfg.Log
	logCfg.FilePath = cfg.LogFilePath()
	logger, closer, err := logging.New(logCfg, "algo-visualizer")
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)
	gg.SetLogger(logger.With("component", "gg"))

	logger.Info("Starting " + version.String())
	if missing {
		logger.Warn("Config: file not found, using defaults", "path", configPath)
	}

	state := app.NewState(cfg, app.Services{
		Gray: vision.Grayscale,
		Warp: vision.WarpAffine,
	}, logger)
	appPrefs := prefs.Load()

	if imagePath == "" {
		imagePath = appPrefs.String(prefs.KeyLastImage)
	}
	if imagePath == "" {
		imagePath = cfg.TestImagePath()
	}
	if err := state.LoadSampleImage(imagePath); err != nil {
		logger.Warn("Image: failed to load sample", "path", imagePath, "error", err)
	}

	watcher, err := app.NewConfigWatcher(configPath, logger)
	if err != nil {
		logger.Warn("Config: hot reload disabled", "error", err)
	} else {
		watcher.OnReload(state.SetConfig)
		watcher.Start()
		defer watcher.Stop()
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.VisualizerTheme{})

	win := mainwindow.New(fyneApp, state, appPrefs)
	win.ShowAndRun()

	if err := appPrefs.SaveIfChanged(); err != nil {
		logger.Error("Prefs: save failed", "error", err)
	}
	logger.Info("Exiting")
	return nil
}
