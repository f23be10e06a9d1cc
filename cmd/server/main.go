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

	"github.com/appdotbuilder/gameva-shop/internal/config"
	"github.com/appdotbuilder/gameva-shop/internal/es"
	"github.com/appdotbuilder/gameva-shop/internal/handlers"
	"github.com/appdotbuilder/gameva-shop/internal/logging"
	"github.com/appdotbuilder/gameva-shop/internal/mykafka"
	"github.com/appdotbuilder/gameva-shop/internal/service"
	httpserver "github.com/appdotbuilder/gameva-shop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	brokers := []string{configuration.KAFKA_ADDRESS}
	topics := []string{"user_events", "cart_events", "product_events", "order_events"}
	prod, err := mykafka.NewProducer(brokers, topics)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("connected to elasticsearch", "url", configuration.ES_URL)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		DB: db,
		AuthHandler: &handlers.AuthHandler{
			DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod,
		},
		ProductHandler: &handlers.ProductHandler{
			DB: db, Producer: prod, JWTSecret: jwtSecret, ES: esClient, Index: "product",
		},
		CategoryHandler:  &handlers.CategoryHandler{DB: db},
		CartHandler:      &handlers.CartHandler{DB: db, Producer: prod, JWTSecret: jwtSecret},
		AddressHandler:   &handlers.AddressHandler{DB: db, JWTSecret: jwtSecret},
		OrderHandler:     &handlers.OrderHandler{DB: db, Producer: prod, JWTSecret: jwtSecret},
		DashboardHandler: &handlers.DashboardHandler{DB: db},
		SearchHandler:    handlers.NewSearchHandler(esClient, "product"),
		ServiceHandler:   &service.TokenService{DB: db, RefreshSecret: refreshSecret, JWTSecret: jwtSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()
	logger.Info("server started", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "err", err)
		}
	} else {
		logger.Error("db() error", "err", err)
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "err", err)
	}

	logger.Info("shutdown complete")
}
