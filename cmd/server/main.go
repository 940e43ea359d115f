package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/misthy/shop-api/internal/assets"
	"github.com/misthy/shop-api/internal/config"
	"github.com/misthy/shop-api/internal/es"
	"github.com/misthy/shop-api/internal/hash"
	"github.com/misthy/shop-api/internal/httpserver"
	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/mykafka"
	"github.com/misthy/shop-api/internal/repo"
	"github.com/misthy/shop-api/internal/service"
	"github.com/misthy/shop-api/internal/token"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	store, err := assets.NewDiskStore(configuration.UPLOAD_DIR)
	if err != nil {
		log.Fatalf("asset store error: %v", err)
	}

	var events service.EventPublisher
	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		events = producer
	}

	gormRepo := &repo.GormRepo{DB: db}
	issuer := token.NewIssuer([]byte(configuration.JWT_SECRET), token.DefaultTTL)

	authSvc := &service.AuthService{
		Repo:   gormRepo,
		Hasher: hash.New(configuration.BCRYPT_COST),
		Tokens: issuer,
		Events: events,
	}
	catalogSvc := &service.CatalogService{
		Repo:          gormRepo,
		Assets:        store,
		Events:        events,
		Index:         "products",
		PublicBaseURL: configuration.PUBLIC_BASE_URL,
	}

	searchEnabled := false
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		catalogSvc.ES = esClient
		searchEnabled = true
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), httpserver.ContextLogger(logger))

	deps := httpserver.Deps{
		Auth:          &httpserver.AuthHTTP{Svc: authSvc},
		Catalog:       &httpserver.CatalogHTTP{Svc: catalogSvc},
		Issuer:        issuer,
		UploadDir:     configuration.UPLOAD_DIR,
		SearchEnabled: searchEnabled,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
