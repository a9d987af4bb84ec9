package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/application/service"
	"github.com/deliverytech/delivery/internal/cache"
	"github.com/deliverytech/delivery/internal/config"
	"github.com/deliverytech/delivery/internal/events"
	"github.com/deliverytech/delivery/internal/httpapi"
	"github.com/deliverytech/delivery/internal/observability"
	"github.com/deliverytech/delivery/internal/pkg/breaker"
	"github.com/deliverytech/delivery/internal/pkg/retry"
	"github.com/deliverytech/delivery/internal/postgres"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	metrics := observability.NewInmem(1000)

	store := cache.NewMemory(cache.Policies())
	caches := service.NewCaches(store, cache.NewTable(), logger, metrics)

	customerRepo := postgres.NewCustomerRepository(pool)
	restaurantRepo := postgres.NewRestaurantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	var publisher service.EventPublisher
	if cfg.EventsEnabled() {
		if err := events.EnsureTopic(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, 3, 1, logger); err != nil {
			logger.Warn("events topic not ready, publishing may fail", zap.Error(err))
		}
		p := events.NewPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			retry.Policy{
				Attempts:     cfg.Retry.Attempts,
				Base:         cfg.Retry.Base,
				Max:          cfg.Retry.Max,
				JitterFactor: cfg.Retry.JitterFactor,
			},
			breaker.New(breaker.Config{
				Threshold:   cfg.Breaker.Threshold,
				OpenTimeout: cfg.Breaker.OpenTimeout,
				MaxHalfOpen: cfg.Breaker.MaxHalfOpen,
			}),
			logger,
		)
		defer p.Close()
		publisher = p
	} else {
		logger.Info("KAFKA_BROKERS not set, order events disabled")
	}

	customers := service.NewCustomerService(customerRepo, caches, logger, metrics)
	restaurants := service.NewRestaurantService(restaurantRepo, caches, logger, metrics)
	products := service.NewProductService(productRepo, restaurantRepo, caches, logger, metrics)
	orders := service.NewOrderService(orderRepo, customerRepo, restaurantRepo, productRepo, caches, publisher, logger, metrics)

	server := httpapi.New(customers, restaurants, products, orders, logger, metrics)

	logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
