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
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kvasnev/hotel_listing/internal/auth"
	"github.com/kvasnev/hotel_listing/internal/config"
	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/events"
	"github.com/kvasnev/hotel_listing/internal/handlers"
	"github.com/kvasnev/hotel_listing/internal/httpserver"
	"github.com/kvasnev/hotel_listing/internal/logging"
	"github.com/kvasnev/hotel_listing/internal/middleware"
	"github.com/kvasnev/hotel_listing/internal/models"
	"github.com/kvasnev/hotel_listing/internal/repository"
	"github.com/kvasnev/hotel_listing/internal/search"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(cfg.KAFKA_ADDRESS)
	}

	var hotelIndex *search.HotelIndex
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		hotelIndex = &search.HotelIndex{ES: esClient, Index: "hotels"}
	}

	secret := []byte(cfg.JWT_SECRET)
	manager := auth.NewManager(auth.NewGormCredentialStore(db), secret, cfg.TOKEN_TTL)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger))
	e.HTTPErrorHandler = errs.NewHTTPErrorHandler()

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Manager: manager, Producer: producer},
		CountryHandler: &handlers.CountryHandler{Repo: repository.NewCountries(db), Producer: producer},
		HotelHandler: &handlers.HotelHandler{
			Repo:      repository.New[models.Hotel](db),
			Countries: repository.NewCountries(db),
			Producer:  producer,
			Index:     hotelIndex,
		},
		JWTSecret: secret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
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
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
