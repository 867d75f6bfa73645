package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/saransh1220/image-depot/internal/gateway"
	"github.com/saransh1220/image-depot/internal/gateway/middleware"
	"github.com/saransh1220/image-depot/internal/modules/filestorage"
	"github.com/saransh1220/image-depot/internal/shared/infrastructure/config"
	"github.com/saransh1220/image-depot/internal/shared/logger"
	"go.uber.org/zap"
)

// app holds the wired components of the service
type app struct {
	fileStorage *filestorage.Module
	handler     http.Handler
	server      *gateway.Server
}

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.New(cfg.Log)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("configuration rejected", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.fileStorage.Close()

	if err := a.server.Run(ctx); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func buildApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*app, error) {
	fileStorage, err := filestorage.NewModule(ctx, cfg.FileStorage, log)
	if err != nil {
		return nil, err
	}

	router := gateway.SetupRoutes(gateway.RouterConfig{
		UploadHandler: fileStorage.Handler(),
	})
	// Logging copies the request, so it must sit outside the metrics
	// middleware for the route pattern to be visible to both.
	router.Use(
		middleware.LoggingMiddleware(log.Named("access")),
		middleware.PrometheusMiddleware,
		func(next http.Handler) http.Handler {
			return middleware.CORSMiddleware(next, cfg.Server.AllowedOrigins)
		},
	)

	handler := router.Handler()

	return &app{
		fileStorage: fileStorage,
		handler:     handler,
		server:      gateway.NewServer(cfg.Server, handler, log),
	}, nil
}
