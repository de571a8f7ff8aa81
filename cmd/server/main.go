package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toggar/toggar-backend/internal/bootstrap"
	"github.com/toggar/toggar-backend/internal/config"
	"github.com/toggar/toggar-backend/internal/db"
	"github.com/toggar/toggar-backend/internal/es"
	"github.com/toggar/toggar-backend/internal/events"
	"github.com/toggar/toggar-backend/internal/httpserver"
	"github.com/toggar/toggar-backend/internal/logging"
	loggingmw "github.com/toggar/toggar-backend/internal/middleware/logging"
	"github.com/toggar/toggar-backend/internal/repo"
	"github.com/toggar/toggar-backend/internal/service"
	"github.com/toggar/toggar-backend/internal/service/search"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.LogLevel)

	gdb, err := db.Open(context.Background(), cfg.DSN())
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := bootstrap.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	prod := events.NewProducer(cfg.KafkaBrokers)
	if prod == nil {
		logger.Warn("no kafka brokers configured, domain events disabled")
	}

	r := repo.New(gdb)
	deps := httpserver.Deps{
		DB: gdb,
		Auth: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL},
			Producer: prod,
		},
		Catalog: &httpserver.CatalogHTTP{
			Svc:      &service.CatalogService{Repo: r},
			Producer: prod,
		},
		JWTSecret: cfg.JWTSecret,
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		svc := search.New(esClient, "products")
		deps.Catalog.Search = svc
		deps.Search = &httpserver.SearchHTTP{Svc: svc}
	} else {
		logger.Warn("no elasticsearch configured, product search disabled")
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
