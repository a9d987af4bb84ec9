package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/cache"
	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/observability"
)

type ProductService struct {
	repo        domain.ProductRepository
	restaurants domain.RestaurantRepository
	caches      *Caches
	logger      *zap.Logger
	metrics     observability.Metrics
}

func NewProductService(repo domain.ProductRepository, restaurants domain.RestaurantRepository, caches *Caches, logger *zap.Logger, metrics observability.Metrics) *ProductService {
	return &ProductService{
		repo:        repo,
		restaurants: restaurants,
		caches:      caches,
		logger:      logger,
		metrics:     metrics,
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	t0 := time.Now()
	if products, ok := lookup[[]domain.Product](ctx, s.caches, cache.ProductsList, cache.KeyAll); ok {
		s.metrics.ObserveLookup(cache.ProductsList, string(SourceCache), convertToMs(t0))
		return products, nil
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("product list failed", zap.Error(err))
		return nil, err
	}

	put(ctx, s.caches, cache.ProductsList, cache.KeyAll, products)
	s.metrics.ObserveLookup(cache.ProductsList, string(SourceDB), convertToMs(t0))
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	t0 := time.Now()
	if p, ok := lookup[domain.Product](ctx, s.caches, cache.ProductByID, cache.KeyID(id)); ok {
		s.metrics.ObserveLookup(cache.ProductByID, string(SourceCache), convertToMs(t0))
		return &p, nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	put(ctx, s.caches, cache.ProductByID, cache.KeyID(id), *p)
	s.metrics.ObserveLookup(cache.ProductByID, string(SourceDB), convertToMs(t0))
	return p, nil
}

// Create attaches a product to its owning restaurant. The restaurant must
// exist; the FK constraint backs this up under races.
func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if _, err := s.restaurants.FindByID(ctx, p.RestaurantID); err != nil {
		return err
	}

	p.Active = true
	t0 := time.Now()
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.metrics.ObserveStoreWrite("product_create", convertToMs(t0))

	s.caches.evictAll(ctx, cache.ProductsList)

	s.logger.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.Int64("restaurant_id", p.RestaurantID),
	)
	return nil
}

func (s *ProductService) Update(ctx context.Context, id int64, changes domain.Product) (*domain.Product, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = changes.Name
	current.Price = changes.Price

	t0 := time.Now()
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreWrite("product_update", convertToMs(t0))

	s.caches.evictAll(ctx, cache.ProductsList)
	put(ctx, s.caches, cache.ProductByID, cache.KeyID(id), *current)

	s.logger.Info("product updated", zap.Int64("product_id", id))
	return current, nil
}

func (s *ProductService) ToggleActive(ctx context.Context, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	current.Active = !current.Active
	if err := s.repo.Save(ctx, current); err != nil {
		return err
	}

	s.caches.evictAll(ctx, cache.ProductsList)
	s.caches.evict(ctx, cache.ProductByID, cache.KeyID(id))

	s.logger.Info("product active toggled",
		zap.Int64("product_id", id),
		zap.Bool("active", current.Active),
	)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.caches.evictAll(ctx, cache.ProductsList)
	s.caches.evict(ctx, cache.ProductByID, cache.KeyID(id))

	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}
