package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/techstore/techstore/internal/admin"
	"github.com/techstore/techstore/internal/cart"
	"github.com/techstore/techstore/internal/catalog"
	"github.com/techstore/techstore/internal/checkout"
	"github.com/techstore/techstore/internal/config"
	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/httpserver"
	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/session"
	"github.com/techstore/techstore/internal/store"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafka(cfg.KafkaBrokers)
	}

	sessions := &session.Service{Store: st, Events: publisher}
	cat := &catalog.Service{Store: st, Events: publisher}
	crt := &cart.Service{Store: st, Sessions: sessions, Catalog: cat, Events: publisher}
	chk := &checkout.Service{Store: st, Cart: crt, Catalog: cat, Sessions: sessions, Events: publisher}
	adm := &admin.Service{Catalog: cat, Sessions: sessions, Checkout: chk}

	ctx := logging.IntoContext(context.Background(), logger)
	if err := cat.Seed(ctx); err != nil {
		log.Fatalf("catalog seed error: %v", err)
	}

	guard := &httpserver.Guard{JWTSecret: cfg.JWTSecret}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Guard:           guard,
		AuthHandler:     &httpserver.AuthHTTP{Sessions: sessions, Guard: guard},
		CatalogHandler:  &httpserver.CatalogHTTP{Catalog: cat},
		CartHandler:     &httpserver.CartHTTP{Cart: crt},
		CheckoutHandler: &httpserver.CheckoutHTTP{Checkout: chk, Sessions: sessions},
		AdminHandler:    &httpserver.AdminHTTP{Admin: adm},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
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

	if err := st.Close(); err != nil {
		log.Printf("store close error: %v", err)
	}

	if err := publisher.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
