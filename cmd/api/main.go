package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-backoffice/internal/db"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/stripe"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/logger"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("config: %v", err)
	}
	logger.Init(cfg.Log)
	log := logger.Get()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	dispatcher := audit.NewDispatcher(audit.New(db))
	infra := routes.Infra{Audit: dispatcher}

	var dedup *cache.EventDedup
	if cfg.Redis.URL != "" {
		dedup, err = cache.NewEventDedup(cfg.Redis.URL, cfg.Redis.DedupTTL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		if err := dedup.Ping(context.Background()); err != nil {
			log.WithError(err).Warn("redis unreachable, webhook de-duplication will fail open")
		}
		infra.Dedup = dedup
	}

	if cfg.Archive.Bucket != "" {
		infra.Archive = storage.NewWebhookArchive(cfg.Archive)
	}

	if cfg.Stripe.SecretKey != "" {
		infra.Checkout = stripe.NewCheckout(cfg.Stripe)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout sessions are disabled")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn("STRIPE_WEBHOOK_SECRET not set, every webhook delivery will be rejected")
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, infra)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Infof("server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}

	dispatcher.Close()

	if dedup != nil {
		if err := dedup.Close(); err != nil {
			log.WithError(err).Warn("redis close")
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
