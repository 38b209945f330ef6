package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/cart"
	"github.com/Aadil-Raja/ecommerce-knives/internal/checkout"
	"github.com/Aadil-Raja/ecommerce-knives/internal/config"
	h "github.com/Aadil-Raja/ecommerce-knives/internal/http"
	"github.com/Aadil-Raja/ecommerce-knives/internal/listing"
	"github.com/Aadil-Raja/ecommerce-knives/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := buildStorage(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up cart storage")
	}

	ctx := context.Background()
	cartStore := cart.New(ctx, store, log)

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout, log)
	admin, err := backend.NewAdminClient(cfg.BackendURL, cfg.RequestTimeout, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up admin client")
	}

	mode := listing.ModeReplace
	if cfg.Listing.AppendPaging {
		mode = listing.ModeAppend
	}
	preloader := listing.NewPreloader(cfg.Listing.PreloadTimeout, cfg.Listing.PreloadConcurrency, log)
	flow := listing.NewFlow(client, mode, cfg.Listing.PageSize, preloader, client, log)

	checkoutService := checkout.NewService(cartStore, client, log)

	router := h.NewRouter(h.RouterDeps{
		Cart:       h.NewCartHandler(cartStore, client, cfg.RequestTimeout),
		Catalog:    h.NewCatalogHandler(client, flow, cfg.RequestTimeout),
		Orders:     h.NewOrdersHandler(client, cfg.RequestTimeout),
		Checkout:   h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
		Newsletter: h.NewNewsletterHandler(client, cfg.RequestTimeout),
		Admin:      h.NewAdminHandler(admin, cfg.RequestTimeout),
		Log:        log,
		Timeout:    cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exited")
}

func buildStorage(cfg config.Config, log logrus.FieldLogger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		log.WithField("addr", cfg.Storage.RedisAddr).Info("cart storage: redis")
		return storage.NewRedisStore(client), nil
	default:
		log.WithField("dir", cfg.Storage.DataDir).Info("cart storage: file")
		return storage.NewFileStore(cfg.Storage.DataDir)
	}
}
