package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/cache"
	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/observability"
)

// NewOrder is the input for order creation. Prices never come from the
// caller: each line is priced from the product as it exists right now.
type NewOrder struct {
	CustomerID      int64
	RestaurantID    int64
	DeliveryAddress string
	Items           []NewOrderItem
}

type NewOrderItem struct {
	ProductID int64
	Quantity  int
}

type OrderService struct {
	repo        domain.OrderRepository
	customers   domain.CustomerRepository
	restaurants domain.RestaurantRepository
	products    domain.ProductRepository
	caches      *Caches
	events      EventPublisher
	logger      *zap.Logger
	metrics     observability.Metrics
	now         func() time.Time
}

func NewOrderService(
	repo domain.OrderRepository,
	customers domain.CustomerRepository,
	restaurants domain.RestaurantRepository,
	products domain.ProductRepository,
	caches *Caches,
	events EventPublisher,
	logger *zap.Logger,
	metrics observability.Metrics,
) *OrderService {
	return &OrderService{
		repo:        repo,
		customers:   customers,
		restaurants: restaurants,
		products:    products,
		caches:      caches,
		events:      events,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	t0 := time.Now()
	if orders, ok := lookup[[]domain.Order](ctx, s.caches, cache.OrdersList, cache.KeyAll); ok {
		s.metrics.ObserveLookup(cache.OrdersList, string(SourceCache), convertToMs(t0))
		return orders, nil
	}

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("order list failed", zap.Error(err))
		return nil, err
	}

	put(ctx, s.caches, cache.OrdersList, cache.KeyAll, orders)
	s.metrics.ObserveLookup(cache.OrdersList, string(SourceDB), convertToMs(t0))
	return orders, nil
}

func (s *OrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	t0 := time.Now()
	if o, ok := lookup[domain.Order](ctx, s.caches, cache.OrderByID, cache.KeyID(id)); ok {
		s.metrics.ObserveLookup(cache.OrderByID, string(SourceCache), convertToMs(t0))
		return &o, nil
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	put(ctx, s.caches, cache.OrderByID, cache.KeyID(id), *o)
	s.metrics.ObserveLookup(cache.OrderByID, string(SourceDB), convertToMs(t0))
	return o, nil
}

// Create builds and persists an order: references are resolved against the
// store, every line snapshots the product price as of now, and the total is
// recomputed from the lines. Order and items land in one transaction.
// The by-id cache is populated after commit, before returning.
func (s *OrderService) Create(ctx context.Context, req NewOrder) (*domain.Order, error) {
	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.Active {
		return nil, &domain.NotFoundError{Entity: "customer", ID: req.CustomerID}
	}

	restaurant, err := s.restaurants.FindByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.Active {
		// Ordering from a deactivated restaurant is indistinguishable from
		// ordering from a missing one.
		return nil, &domain.NotFoundError{Entity: "restaurant", ID: req.RestaurantID}
	}

	order := &domain.Order{
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		DeliveryAddress: req.DeliveryAddress,
		Status:          domain.StatusCreated,
		CreatedAt:       s.now(),
		Items:           make([]domain.OrderItem, 0, len(req.Items)),
	}

	for _, line := range req.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}
	order.Total = order.ComputeTotal()

	t0 := time.Now()
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreWrite("order_create", convertToMs(t0))

	s.caches.evictAll(ctx, cache.OrdersList)
	put(ctx, s.caches, cache.OrderByID, cache.KeyID(order.ID), *order)

	if s.events != nil {
		s.events.OrderCreated(ctx, order)
	}

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.Int64("restaurant_id", order.RestaurantID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

// UpdateStatus advances the order through its lifecycle. The current status
// comes from the store, never the cache, so concurrent transitions settle on
// committed state.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, &domain.InvalidTransitionError{To: next}
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, &domain.InvalidTransitionError{From: current.Status, To: next}
	}

	t0 := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreWrite("order_status", convertToMs(t0))

	from := current.Status
	current.Status = next

	s.caches.evictAll(ctx, cache.OrdersList)
	put(ctx, s.caches, cache.OrderByID, cache.KeyID(id), *current)

	if s.events != nil {
		s.events.OrderStatusChanged(ctx, current, from)
	}

	s.logger.Info("order status changed",
		zap.Int64("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
	)
	return current, nil
}
