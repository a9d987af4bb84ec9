// eventstail follows the order events topic and prints every event.
// Useful when checking what the API actually emits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/events"
)

func main() {
	_ = godotenv.Load("env/.env")

	var (
		brokers = flag.String("brokers", os.Getenv("KAFKA_BROKERS"), "comma separated broker list")
		topic   = flag.String("topic", envDefault("KAFKA_TOPIC", "order-events"), "events topic")
		group   = flag.String("group", "eventstail", "consumer group id")
	)
	flag.Parse()

	if *brokers == "" {
		log.Fatal("no brokers: set KAFKA_BROKERS or pass -brokers")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(
		strings.Split(*brokers, ","), *topic, *group,
		func(_ context.Context, e events.Event) error {
			logger.Info("event",
				zap.String("type", e.Type),
				zap.Int64("order_id", e.OrderID),
				zap.Int64("customer_id", e.CustomerID),
				zap.String("status", string(e.Status)),
				zap.String("from", string(e.From)),
				zap.Float64("total", e.Total),
				zap.Time("occurred_at", e.OccurredAt),
			)
			return nil
		},
		logger,
	)

	if err := consumer.Run(ctx); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
