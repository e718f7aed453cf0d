package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"menu-fit/internal/config"
	"menu-fit/internal/database"
	"menu-fit/internal/logging"
	"menu-fit/internal/metrics"
	"menu-fit/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		logging.Must(logging.Options{Level: "info"}).Fatal("failed to load config", zap.Error(err))
	}
	logger := logging.Must(logging.Options{Level: cfg.Logging.Level, Development: cfg.Logging.Development})
	defer logger.Sync()

	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("incomplete bot configuration", zap.Error(err))
	}

	// 2. Usage metrics
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	metricsStore := metrics.NewStore(db.SQL)
	defer metricsStore.Close()

	// 3. Telegram Bot
	api, err := telegram.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize telegram bot", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	sessions := telegram.NewSessionStore(cfg.Session.TTL)
	go sessions.Run(ctx, time.Minute)

	bot := telegram.NewBot(cfg, api, sessions, metricsStore, logger)

	// 4. Start Server with Graceful Shutdown
	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("telegram bot server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	bot.Wait()
	stop()

	logger.Info("server exiting")
}
