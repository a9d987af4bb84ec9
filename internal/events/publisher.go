package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/pkg/breaker"
	"github.com/deliverytech/delivery/internal/pkg/pool"
	"github.com/deliverytech/delivery/internal/pkg/retry"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

type Event struct {
	Type       string             `json:"type"`
	OrderID    int64              `json:"order_id"`
	CustomerID int64              `json:"customer_id"`
	Status     domain.OrderStatus `json:"status"`
	From       domain.OrderStatus `json:"from,omitempty"`
	Total      float64            `json:"total"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher emits order lifecycle events after the store commit. Delivery is
// best effort: failures are retried, then logged and dropped. The breaker
// keeps a dead broker from stalling every request. Writes run on a small
// worker pool so the request path never waits on the broker.
type Publisher struct {
	writer  writer
	breaker *breaker.Breaker
	retry   retry.Policy
	workers *pool.Pool
	logger  *zap.Logger
}

func NewPublisher(brokers []string, topic string, retryPolicy retry.Policy, brk *breaker.Breaker, logger *zap.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		WriteTimeout: 2 * time.Second,
	}
	return &Publisher{
		writer:  w,
		breaker: brk,
		retry:   retryPolicy,
		workers: pool.New(4),
		logger:  logger,
	}
}

// Close drains pending events and releases the writer.
func (p *Publisher) Close() error {
	p.workers.Close()
	if c, ok := p.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (p *Publisher) OrderCreated(_ context.Context, o *domain.Order) {
	p.enqueue(Event{
		Type:       TypeOrderCreated,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		OccurredAt: time.Now(),
	})
}

func (p *Publisher) OrderStatusChanged(_ context.Context, o *domain.Order, from domain.OrderStatus) {
	p.enqueue(Event{
		Type:       TypeOrderStatusChanged,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		From:       from,
		Total:      o.Total,
		OccurredAt: time.Now(),
	})
}

// enqueue hands the event to the pool on a detached context: the request
// that produced it has already been answered by the time the write happens.
func (p *Publisher) enqueue(e Event) {
	p.workers.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		p.publish(ctx, e)
	})
}

func (p *Publisher) publish(ctx context.Context, e Event) {
	if err := p.breaker.Allow(); err != nil {
		p.logger.Warn("event dropped, broker circuit open",
			zap.String("type", e.Type),
			zap.Int64("order_id", e.OrderID),
		)
		return
	}

	value, err := json.Marshal(e)
	if err != nil {
		p.logger.Error("event marshal failed",
			zap.String("type", e.Type),
			zap.Error(err),
		)
		return
	}

	msg := kafkago.Message{
		Key:   []byte(strconv.FormatInt(e.OrderID, 10)),
		Value: value,
	}

	if err := retry.Do(ctx, p.retry, func() error {
		return p.writer.WriteMessages(ctx, msg)
	}); err != nil {
		p.breaker.Failure()
		p.logger.Error("event publish failed after retries",
			zap.String("type", e.Type),
			zap.Int64("order_id", e.OrderID),
			zap.Error(err),
		)
		return
	}

	p.breaker.Success()
	p.logger.Info("event published",
		zap.String("type", e.Type),
		zap.Int64("order_id", e.OrderID),
	)
}
