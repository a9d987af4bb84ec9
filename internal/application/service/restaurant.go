package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/cache"
	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/observability"
)

type RestaurantService struct {
	repo    domain.RestaurantRepository
	caches  *Caches
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewRestaurantService(repo domain.RestaurantRepository, caches *Caches, logger *zap.Logger, metrics observability.Metrics) *RestaurantService {
	return &RestaurantService{
		repo:    repo,
		caches:  caches,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	t0 := time.Now()
	if restaurants, ok := lookup[[]domain.Restaurant](ctx, s.caches, cache.RestaurantsList, cache.KeyAll); ok {
		s.metrics.ObserveLookup(cache.RestaurantsList, string(SourceCache), convertToMs(t0))
		return restaurants, nil
	}

	restaurants, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("restaurant list failed", zap.Error(err))
		return nil, err
	}

	put(ctx, s.caches, cache.RestaurantsList, cache.KeyAll, restaurants)
	s.metrics.ObserveLookup(cache.RestaurantsList, string(SourceDB), convertToMs(t0))
	return restaurants, nil
}

// ListByCategory is the filtered list read, keyed by the category string.
func (s *RestaurantService) ListByCategory(ctx context.Context, category string) ([]domain.Restaurant, error) {
	t0 := time.Now()
	if restaurants, ok := lookup[[]domain.Restaurant](ctx, s.caches, cache.RestaurantsByCategory, category); ok {
		s.metrics.ObserveLookup(cache.RestaurantsByCategory, string(SourceCache), convertToMs(t0))
		return restaurants, nil
	}

	restaurants, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		s.logger.Error("restaurant list by category failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}

	put(ctx, s.caches, cache.RestaurantsByCategory, category, restaurants)
	s.metrics.ObserveLookup(cache.RestaurantsByCategory, string(SourceDB), convertToMs(t0))
	return restaurants, nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	t0 := time.Now()
	if r, ok := lookup[domain.Restaurant](ctx, s.caches, cache.RestaurantByID, cache.KeyID(id)); ok {
		s.metrics.ObserveLookup(cache.RestaurantByID, string(SourceCache), convertToMs(t0))
		return &r, nil
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	put(ctx, s.caches, cache.RestaurantByID, cache.KeyID(id), *r)
	s.metrics.ObserveLookup(cache.RestaurantByID, string(SourceDB), convertToMs(t0))
	return r, nil
}

func (s *RestaurantService) Create(ctx context.Context, r *domain.Restaurant) error {
	taken, err := s.repo.ExistsByName(ctx, r.Name)
	if err != nil {
		return err
	}
	if taken {
		return &domain.ConflictError{Field: "name", Value: r.Name}
	}

	r.Active = true
	t0 := time.Now()
	if err := s.repo.Create(ctx, r); err != nil {
		return err
	}
	s.metrics.ObserveStoreWrite("restaurant_create", convertToMs(t0))

	s.evictLists(ctx)

	s.logger.Info("restaurant created",
		zap.Int64("restaurant_id", r.ID),
		zap.String("name", r.Name),
	)
	return nil
}

func (s *RestaurantService) Update(ctx context.Context, id int64, changes domain.Restaurant) (*domain.Restaurant, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Name != current.Name {
		taken, err := s.repo.ExistsByName(ctx, changes.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.ConflictError{Field: "name", Value: changes.Name}
		}
	}

	current.Name = changes.Name
	current.Phone = changes.Phone
	current.Category = changes.Category
	current.DeliveryFee = changes.DeliveryFee
	current.DeliveryTimeMinutes = changes.DeliveryTimeMinutes

	t0 := time.Now()
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreWrite("restaurant_update", convertToMs(t0))

	s.evictLists(ctx)
	put(ctx, s.caches, cache.RestaurantByID, cache.KeyID(id), *current)

	s.logger.Info("restaurant updated", zap.Int64("restaurant_id", id))
	return current, nil
}

func (s *RestaurantService) ToggleActive(ctx context.Context, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	current.Active = !current.Active
	if err := s.repo.Save(ctx, current); err != nil {
		return err
	}

	s.evictLists(ctx)
	s.caches.evict(ctx, cache.RestaurantByID, cache.KeyID(id))

	s.logger.Info("restaurant active toggled",
		zap.Int64("restaurant_id", id),
		zap.Bool("active", current.Active),
	)
	return nil
}

func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.evictLists(ctx)
	s.caches.evict(ctx, cache.RestaurantByID, cache.KeyID(id))

	s.logger.Info("restaurant deleted", zap.Int64("restaurant_id", id))
	return nil
}

// evictLists drops both the plain list and every category slice. A category
// change moves the restaurant between filtered lists, so partial eviction
// is not safe.
func (s *RestaurantService) evictLists(ctx context.Context) {
	s.caches.evictAll(ctx, cache.RestaurantsList)
	s.caches.evictAll(ctx, cache.RestaurantsByCategory)
}
