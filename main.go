package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"railbook/internal/config"
	router "railbook/internal/http"
	"railbook/internal/storage"
	"railbook/internal/storage/memory"
	"railbook/internal/storage/mysql"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "railbook").Logger()

	var store storage.Store
	switch cfg.StoreKind {
	case "memory":
		store = memory.New()
		log.Warn().Msg("using in-memory store, data will not survive restart")
	default:
		db, err := mysql.Open(cfg.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		ms := mysql.New(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := ms.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("failed to ensure schema")
		}
		cancel()
		store = ms
	}

	r := router.NewRouter(cfg, store, log)

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}

	log.Info().Msg("server stopped")
}
