package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one decoded order event. A non-nil error leaves the
// message uncommitted so it is redelivered.
type Handler func(ctx context.Context, e Event) error

type reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads order events from the topic and feeds them to a Handler,
// committing offsets one by one in fetch order.
type Consumer struct {
	reader  reader
	handler Handler
	logger  *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, handler Handler, logger *zap.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:  r,
		handler: handler,
		logger:  logger,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.logger.Warn("fetch failed, backing off", zap.Error(err))
			sleepWithContext(ctx, time.Second)
			continue
		}

		var e Event
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			// A malformed message never becomes well formed; skip it.
			c.logger.Error("event decode failed, skipping",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		} else if err := c.handler(ctx, e); err != nil {
			c.logger.Error("event handler failed, message not committed",
				zap.String("type", e.Type),
				zap.Int64("order_id", e.OrderID),
				zap.Error(err),
			)
			sleepWithContext(ctx, 200*time.Millisecond)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warn("commit failed",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
