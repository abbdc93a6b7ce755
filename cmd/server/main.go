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

	"github.com/tablegames/shop/internal/config"
	"github.com/tablegames/shop/internal/db"
	"github.com/tablegames/shop/internal/es"
	"github.com/tablegames/shop/internal/httpserver"
	"github.com/tablegames/shop/internal/logging"
	"github.com/tablegames/shop/internal/mykafka"
	"github.com/tablegames/shop/internal/repo"
	"github.com/tablegames/shop/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	database, err := db.Open(ctx, configuration.DATABASE_URL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	r := repo.New(database)
	tokens := &service.TokenService{Repo: r}
	catalog := &service.CatalogService{Repo: r, ES: esClient, Index: "products"}
	cart := &service.CartService{Repo: r}
	orders := &service.OrderService{Repo: r}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &httpserver.AuthHandler{Repo: r, Tokens: tokens, Producer: producer},
		ProductHandler: &httpserver.ProductHandler{Catalog: catalog, Producer: producer, StaticDir: configuration.STATIC_DIR, ImagesDir: configuration.IMAGES_DIR},
		CartHandler:    &httpserver.CartHandler{Cart: cart, Producer: producer},
		OrderHandler:   &httpserver.OrderHandler{Orders: orders, Producer: producer},
		ProfileHandler: &httpserver.ProfileHandler{Repo: r, Orders: orders},
		Auth:           &httpserver.TokenAuth{Tokens: tokens},
		StaticDir:      configuration.STATIC_DIR,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.ADDRESS,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
