package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edaniels/golog"
	"github.com/spf13/pflag"

	"github.com/molpad/molpad/internal/action"
	"github.com/molpad/molpad/internal/command"
	"github.com/molpad/molpad/internal/config"
	"github.com/molpad/molpad/internal/engine"
	"github.com/molpad/molpad/internal/gamepad"
	"github.com/molpad/molpad/internal/hub"
	"github.com/molpad/molpad/internal/server"
	"github.com/molpad/molpad/internal/tray"
)

// Cross-platform shutdown signals: os.Interrupt covers Ctrl+C on Windows
// and SIGINT on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	var (
		addr       = pflag.String("addr", ":8080", "listen address for the remote surface")
		configPath = pflag.String("config", "", "settings document path (default: per-user config dir)")
		tickHz     = pflag.Int("tick-hz", 60, "engine tick rate")
		headless   = pflag.Bool("headless", false, "run without the system tray")
		debug      = pflag.Bool("debug", false, "log every dispatched directive")
	)
	pflag.Parse()

	logger := golog.NewDevelopmentLogger("molpad")

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			logger.Fatalw("cannot locate settings path", "error", err)
		}
	}
	store := config.NewStore(path)

	settings, err := store.Load()
	if err != nil {
		logger.Warnw("settings document unreadable, falling back to defaults",
			"path", path, "error", err)
		settings = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	reader := gamepad.NewReader(logger)

	h := hub.NewHub(logger)
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, logger)
	go broadcaster.Run(ctx)

	adapters := []action.Adapter{broadcaster}
	if *debug {
		adapters = append(adapters, action.NewLogAdapter(logger))
	}

	interval := engine.DefaultTickInterval
	if *tickHz > 0 {
		interval = time.Second / time.Duration(*tickHz)
	}
	eng := engine.New(reader, action.Multi(adapters...), store, settings, interval, logger)
	broadcaster.SetStatus(eng.Status)

	exec := command.NewExecutor(eng)

	srv := server.New(h, broadcaster, exec, statusPageFS(), *addr, logger)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// The SDL loop needs its own OS-locked goroutine; it reports device
	// hotplug itself and never stops the process.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		if err := reader.Run(ctx); err != nil {
			logger.Errorw("gamepad backend failed", "error", err)
		}
	}()

	eng.Start()
	logger.Infow("molpad started", "status", "http://localhost"+*addr)

	shutdownRequested := make(chan struct{})
	if !*headless {
		go func() {
			t := tray.New(eng, "http://localhost"+*addr, logger, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		logger.Info("press Ctrl+C to exit")
	}

	select {
	case <-sigCh:
		logger.Info("shutting down")
	case <-shutdownRequested:
		logger.Info("shutdown requested from tray")
	case err := <-serverErrCh:
		logger.Errorw("http server error", "error", err)
	}

	eng.Stop()
	cancel()
	<-readerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("http server shutdown error", "error", err)
	}

	logger.Info("molpad stopped")
}
