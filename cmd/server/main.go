package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phoneinventory/internal/phone"
	phonemetrics "phoneinventory/internal/phone/metrics"
	"phoneinventory/internal/phone/service"
	"phoneinventory/internal/phone/store"
	"phoneinventory/internal/platform/config"
	"phoneinventory/internal/platform/httpserver"
	"phoneinventory/internal/platform/logger"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal/phone packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	phones, cleanup, err := newStore(cfg)
	if err != nil {
		log.Error("store setup failed", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	metrics := phonemetrics.New()
	svc := phone.NewService(phones,
		service.WithLogger(log),
		service.WithMetrics(metrics),
	)

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	phone.NewHandler(svc, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting phone inventory server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

// newStore selects the backing store: Postgres when a connection string is
// configured, the in-memory store otherwise.
func newStore(cfg config.Server) (service.Store, func(), error) {
	if cfg.DatabaseURI == "" {
		return store.NewInMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURI)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	pg := store.NewPostgres(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return pg, func() { _ = db.Close() }, nil
}
