package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cabinrental/internal/config"
	"cabinrental/internal/database"
	"cabinrental/internal/modules/events"
	"cabinrental/internal/pkg/logger"
	"cabinrental/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(slog.Default(), "config load failed", "error", err)
	}

	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})
	slog.SetDefault(log)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		logger.Fatal(log, "db connect failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal(log, "db migrate failed", "error", err)
	}

	hub := events.NewHub(log)
	router := server.NewRouter(server.Deps{Config: cfg, DB: db, Hub: hub, Log: log})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(log, "server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
