package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"edge.bartcommute.org/internal/app"
	"edge.bartcommute.org/internal/appconf"
	"edge.bartcommute.org/internal/clock"
	"edge.bartcommute.org/internal/logging"
	"edge.bartcommute.org/internal/restapi"
)

const shutdownGracePeriod = 10 * time.Second

func main() {
	// A missing .env file is fine; env vars may come from the environment
	// proper.
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := appconf.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(string(cfg.Env), cfg.Verbose)

	application, err := app.NewApplication(cfg, logger, clock.RealClock{})
	if err != nil {
		logging.LogError(logger, "failed to build application", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	if err := run(application, logger); err != nil {
		logging.LogError(logger, "server error", err)
		os.Exit(1)
	}
}

func run(application *app.Application, logger *slog.Logger) error {
	api := restapi.NewRestAPI(application)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		shutdownErr <- server.Shutdown(ctx)
	}()

	logger.Info("starting server",
		slog.String("addr", server.Addr),
		slog.String("env", string(application.Config.Env)))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
