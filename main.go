package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"avon-hello/app"
	"avon-hello/config"
	"avon-hello/db"
	"avon-hello/logger"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	var envErr error
	if os.Getenv("ENV") != "production" {
		envErr = godotenv.Overload(".env")
	}

	paths, err := config.ResolvePaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve application paths: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(paths.ErrorLogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Anything that escapes main lands in the error log before the process dies
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("💥 Fatal panic", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			logger.Sync()
			os.Exit(2)
		}
	}()

	if envErr != nil {
		logger.Debug("Warning: .env file not loaded, using system environment variables", zap.Error(envErr))
	}
	logger.Info("📁 Data directory", zap.String("path", paths.DataDir))

	if err := run(paths); err != nil {
		logger.Error("❌ Server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(paths config.Paths) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize application
	handler, err := app.Initialize(ctx, paths)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	// The admin API serves this machine only
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "127.0.0.1:" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("🛑 Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
