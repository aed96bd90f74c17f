// cmd/bfhl-server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bfhl-service/internal/api"
	"bfhl-service/internal/common/config"
	"bfhl-service/internal/common/logger"
	"bfhl-service/internal/common/observability"
	"bfhl-service/internal/genai"
	"bfhl-service/internal/operations"
	"bfhl-service/pkg/registry"
)

func main() {
	configPath := flag.String("config", "", "config file to load instead of searching ./configs")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting bfhl server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
		zap.String("envFile", cfg.EnvFile),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	gemini := genai.NewGeminiClient(cfg.GenAI, log.With(map[string]interface{}{"component": "genai"}))
	if !gemini.Configured() {
		zapLog.Warn("GEMINI_API_KEY is not set, AI requests will fail")
	}

	catalog, err := registry.Default()
	if err != nil {
		zapLog.Fatal("operation catalog load failed", zap.Error(err))
	}
	ops, err := operations.NewDefaultRegistry(catalog, cfg.Limits, gemini)
	if err != nil {
		zapLog.Fatal("operation registry build failed", zap.Error(err))
	}
	zapLog.Info("Operations registered", zap.Strings("keys", ops.Keys()))

	server := api.NewServer(cfg, ops, log, obs)
	httpServer := server.HTTPServer(cfg.Server)

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		zapLog.Fatal("listen failed", zap.String("addr", httpServer.Addr), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zapLog.Info("Server listening", zap.String("addr", ln.Addr().String()))
		server.SetReady(true)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// --- Graceful Shutdown ---
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutdown signal received, draining requests...")
		server.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("Server stopped with error", zap.Error(err))
		return
	}
	zapLog.Info("Server stopped gracefully")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
