package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fkcurrie/ledchain-golang/internal/config"
	"github.com/fkcurrie/ledchain-golang/internal/display"
	"github.com/fkcurrie/ledchain-golang/internal/server"
)

var (
	configPath = flag.String("config", "config.json", "path to config file")
	debug      = flag.Bool("debug", false, "enable debug logging")
	port       = flag.Int("port", 0, "port to listen on, overrides the config file")
)

func newLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func main() {
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		sugar.Infow("config file not found, using defaults",
			"path", *configPath)
		cfg = config.DefaultConfig()
	} else if err != nil {
		sugar.Fatalw("unable to load config",
			"path", *configPath,
			"err", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	font, err := display.LoadFont(cfg)
	if err != nil {
		sugar.Fatalw("unable to load font",
			"err", err)
	}

	d, err := display.Open(cfg, logger)
	if err != nil {
		sugar.Fatalw("unable to open display",
			"transport", cfg.Transport.Kind,
			"err", err)
	}

	renderer := display.NewRenderer(d, font, display.Options{
		Interval:       cfg.UpdateInterval(),
		ScrollInterval: cfg.ScrollInterval(),
		Spacing:        cfg.Display.Spacing,
		Logger:         sugar.Named("renderer"),
	})
	defer func() {
		if err := renderer.Close(); err != nil {
			sugar.Warnw("unable to close display",
				"err", err)
		}
	}()

	if cfg.Display.Text != "" {
		if err := renderer.SetText(cfg.Display.Text, cfg.Display.TextColor, image.Point{}, cfg.Display.Scroll); err != nil {
			sugar.Warnw("unable to show startup text",
				"text", cfg.Display.Text,
				"err", err)
		}
	}

	// Create context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := renderer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			sugar.Errorw("renderer stopped",
				"err", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.New(renderer, sugar.Named("server")),
	}

	go func() {
		sugar.Infow("serving api",
			"addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("unable to start server",
				"addr", srv.Addr,
				"err", err)
		}
	}()

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	sugar.Infow("shutting down",
		"signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("unable to shut down server",
			"err", err)
	}

	cancel()
}
