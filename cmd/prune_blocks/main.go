package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"cabinrental/internal/config"
	"cabinrental/internal/database"
	"cabinrental/internal/pkg/daterange"
	"cabinrental/internal/pkg/logger"
	"cabinrental/internal/repository"
)

func main() {
	defaultCutoff := time.Now().AddDate(-1, 0, 0).Format(daterange.Layout)
	before := flag.String("before", defaultCutoff, "delete blocks ending on or before this date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(slog.Default(), "config load failed", "error", err)
	}
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	if !daterange.IsDate(*before) {
		logger.Fatal(log, "invalid -before value", "before", *before)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		logger.Fatal(log, "db connect failed", "error", err)
	}

	deleted, err := repository.NewBlockRepository(db).DeleteEndedBy(context.Background(), *before)
	if err != nil {
		logger.Fatal(log, "prune blocks failed", "error", err)
	}

	log.Info("prune blocks completed", "before", *before, "deleted", deleted)
}
