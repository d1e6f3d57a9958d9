package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"newsroom-cms/config"
	"newsroom-cms/logger"
	"newsroom-cms/mailer"
	"newsroom-cms/routes"
	"newsroom-cms/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zlog.Sync() }()

	// Initialize database
	db, err := config.InitDB(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	var mail services.Mailer
	if smtp := mailer.NewSMTP(cfg.Mail); smtp != nil {
		mail = smtp
	} else {
		zlog.Warn("SMTP_HOST not set, publish notifications will be skipped")
	}

	router := routes.SetupRouter(db, cfg, zlog, mail)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
