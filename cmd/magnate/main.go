package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magnate/server/internal/auth"
	"github.com/magnate/server/internal/config"
	"github.com/magnate/server/internal/content"
	"github.com/magnate/server/internal/sim"
	"github.com/magnate/server/internal/store"
	"github.com/magnate/server/internal/web"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("MAGNATE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Build the world: store, catalog, engine
	st := store.New()
	if err := content.Bootstrap(cfg.Content, st, log); err != nil {
		return fmt.Errorf("bootstrap content: %w", err)
	}
	engine := sim.New(cfg.Sim, st, log)

	// 4. Auth: password hasher and session registry
	hasher, err := auth.NewHasher()
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	sessions := auth.NewSessions(cfg.Web.SessionTTL.Duration)

	// 5. Web server
	webSrv := web.NewServer(*cfg, engine, sessions, hasher, log)
	httpSrv := &http.Server{
		Addr:         cfg.Web.BindAddress,
		Handler:      webSrv.Handler(),
		ReadTimeout:  cfg.Web.ReadTimeout.Duration,
		WriteTimeout: cfg.Web.WriteTimeout.Duration,
	}
	go func() {
		log.Info("web server listening", zap.String("addr", cfg.Web.BindAddress))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("web server stopped", zap.Error(err))
		}
	}()

	// 6. Tick loop. The ticker fires on a fixed period; if a tick runs
	// long, the next firing is simply dropped by the channel; ticks
	// never queue up.
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate.Duration)
	defer ticker.Stop()

	log.Info("simulation started",
		zap.String("server", cfg.Server.Name),
		zap.Duration("tick_rate", cfg.Sim.TickRate.Duration))

	for {
		select {
		case <-ticker.C:
			engine.Tick()
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(ctx); err != nil {
				log.Warn("web server shutdown", zap.Error(err))
			}
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
