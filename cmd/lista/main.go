package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"lista/internal/backend"
	"lista/internal/cli"
	apphttp "lista/internal/http"
	"lista/internal/list"
	applog "lista/internal/log"
	"lista/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	res, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() { _ = res.Cleanup() }()

	svc := services.NewListService(list.New(), res.Persister, publisherOrNil(res))
	svc.Hydrate(context.Background())

	srv, err := apphttp.NewServer(":"+cfg.Port, svc, logger)
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting lista server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

// publisherOrNil unwraps the optional AMQP client; a typed nil pointer
// must not end up in the service's interface field.
func publisherOrNil(res *backend.Result) services.ListPublisher {
	if res.Publisher == nil {
		return nil
	}
	return res.Publisher
}
