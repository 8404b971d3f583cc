// Package main is the entry point for the cheztheme desktop widget.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/host"
	"github.com/jmylchreest/cheztheme/internal/panel"
	"github.com/jmylchreest/cheztheme/internal/watch"
	"github.com/jmylchreest/cheztheme/internal/widget"
)

const (
	appID   = "io.github.jmylchreest.cheztheme"
	appName = "cheztheme-widget"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to cheztheme config file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println(appName, "version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	run(cfg, logger)
}

func run(cfg *config.Config, logger *slog.Logger) {
	logger.Info("starting cheztheme widget", "version", version)

	app := adw.NewApplication(appID, 0)

	var (
		popup   *widget.Popup
		watcher *watch.FileWatcher
		session *panel.Session
	)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()

	// A second launch re-activates the primary instance, which toggles the popup.
	app.ConnectActivate(func() {
		if popup != nil {
			popup.Toggle()
			return
		}

		h := host.FromConfig(cfg, logger)
		sink := widget.NewCSSProviderSink(logger)
		session = panel.NewSession(h, sink, logger)

		go func() {
			if err := session.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("panel session stopped", "error", err)
			}
		}()

		popup = widget.NewPopup(&app.Application, session, sink, cfg.Panel, logger)

		w, err := watch.NewFileWatcher(h.ConfigPath(), session.ConfigChanged, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := w.Start(); err != nil {
			logger.Warn("failed to start config watcher", "path", h.ConfigPath(), "error", err)
		} else {
			watcher = w
		}

		session.Mount()
		popup.Show()
		app.Hold()

		logger.Info("cheztheme widget ready", "chezmoi_config", h.ConfigPath())
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if watcher != nil {
			_ = watcher.Stop()
		}
		if popup != nil {
			popup.Close()
		}
		cancel()
	})

	status := app.Run(os.Args)
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("cheztheme widget stopped")
}
