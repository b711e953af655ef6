package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"fluiddiary/internal/app/server/api"
	"fluiddiary/internal/app/server/config"
	"fluiddiary/internal/domain/document"
	"fluiddiary/internal/infrastructure/storage/memory"
	"fluiddiary/internal/infrastructure/storage/postgres"
	"fluiddiary/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	var repo document.Repository
	if cfg.DB.DatabaseURI != "" {
		storage, err := postgres.New(cfg)
		if err != nil {
			log.Error("storage init failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer storage.Close()
		repo = postgres.NewDocumentRepository(storage.Pool(), log)
		log.Info("using postgres storage")
	} else {
		repo = memory.NewDocumentRepository()
		log.Warn("no DATABASE_URI set, using in-memory storage")
	}

	mux := api.New(repo, log)
	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", slog.String("address", cfg.Server.RunAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.Any("error", err))
	}
}
