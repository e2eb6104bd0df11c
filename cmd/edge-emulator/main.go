// Command edge-emulator serves a local Next.js server and GraphQL endpoint
// through the same request transformers the CDN runs at the edge.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kellendonk/webv2/internal/emulator"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	settings, err := emulator.LoadSettings()
	if err != nil {
		logger.Fatal("loading settings", zap.Error(err))
	}

	accessLogger, err := emulator.NewAccessLogger(settings)
	if err != nil {
		logger.Fatal("opening access log", zap.Error(err))
	}
	defer accessLogger.Sync()

	handler, err := emulator.NewHandler(settings, logger)
	if err != nil {
		logger.Fatal("configuring edge", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           emulator.AccessLog(accessLogger)(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("edge emulator listening",
		zap.String("addr", settings.ListenAddr),
		zap.String("website", settings.WebsiteOrigin),
		zap.String("api", settings.ApiOrigin),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serving", zap.Error(err))
	}
}
