package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matka_backend/internal/config"
	"matka_backend/pkg/logger"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	shutdownTimeout = 10 * time.Second
)

type App struct {
	ServiceProvider *ServiceProvider
	configPath      string
}

// NewApp configPath - путь к YAML с коэффициентами и списками панн
func NewApp(configPath string) *App {
	return &App{configPath: configPath}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider(s.configPath)
}

// InitLogger уровень берется из LOG_LEVEL (debug, info, warn, error)
func InitLogger() {
	level := slog.LevelInfo
	if v := os.Getenv(logLevelEnvName); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			level = slog.LevelInfo
		}
	}
	logger.Init(&logger.Options{Level: level})
}

func (s *App) Run() error {
	err := config.Load(".env")
	InitLogger()
	if err != nil {
		logger.Warn("Error loading .env file", "err", err)
	}
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
