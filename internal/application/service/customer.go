package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/cache"
	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/observability"
)

type CustomerService struct {
	repo    domain.CustomerRepository
	caches  *Caches
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewCustomerService(repo domain.CustomerRepository, caches *Caches, logger *zap.Logger, metrics observability.Metrics) *CustomerService {
	return &CustomerService{
		repo:    repo,
		caches:  caches,
		logger:  logger,
		metrics: metrics,
	}
}

// List returns all active customers, read-through under customers-list.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	t0 := time.Now()
	if customers, ok := lookup[[]domain.Customer](ctx, s.caches, cache.CustomersList, cache.KeyAll); ok {
		s.metrics.ObserveLookup(cache.CustomersList, string(SourceCache), convertToMs(t0))
		return customers, nil
	}

	customers, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("customer list failed", zap.Error(err))
		return nil, err
	}

	put(ctx, s.caches, cache.CustomersList, cache.KeyAll, customers)
	s.metrics.ObserveLookup(cache.CustomersList, string(SourceDB), convertToMs(t0))
	return customers, nil
}

// GetByID is read-through keyed by id. Absence is never cached, so a
// create right after a miss is visible immediately.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	t0 := time.Now()
	if c, ok := lookup[domain.Customer](ctx, s.caches, cache.CustomerByID, cache.KeyID(id)); ok {
		s.metrics.ObserveLookup(cache.CustomerByID, string(SourceCache), convertToMs(t0))
		return &c, nil
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	put(ctx, s.caches, cache.CustomerByID, cache.KeyID(id), *c)
	s.metrics.ObserveLookup(cache.CustomerByID, string(SourceDB), convertToMs(t0))
	return c, nil
}

// Create registers a customer. Email uniqueness is pre-checked, but the
// database constraint stays the final arbiter: a racing insert surfaces as
// the same ConflictError the pre-check would have produced.
func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	taken, err := s.repo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		return err
	}
	if taken {
		return &domain.ConflictError{Field: "email", Value: c.Email}
	}

	c.Active = true
	t0 := time.Now()
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.metrics.ObserveStoreWrite("customer_create", convertToMs(t0))

	// Write committed first, only then invalidate: the other order would let
	// a concurrent reader repopulate the list with pre-write data.
	s.caches.evictAll(ctx, cache.CustomersList)

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("email", c.Email),
	)
	return nil
}

// Update replaces name/email/phone. The current row is read from the store,
// never the cache, so the uniqueness check sees committed state.
func (s *CustomerService) Update(ctx context.Context, id int64, changes domain.Customer) (*domain.Customer, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Email != current.Email {
		taken, err := s.repo.ExistsByEmail(ctx, changes.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.ConflictError{Field: "email", Value: changes.Email}
		}
	}

	current.Name = changes.Name
	current.Email = changes.Email
	current.Phone = changes.Phone

	t0 := time.Now()
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	s.metrics.ObserveStoreWrite("customer_update", convertToMs(t0))

	// Singular cache is written through, list cache only invalidated: the
	// by-id entry is cheap to rebuild here, the list is not.
	s.caches.evictAll(ctx, cache.CustomersList)
	put(ctx, s.caches, cache.CustomerByID, cache.KeyID(id), *current)

	s.logger.Info("customer updated", zap.Int64("customer_id", id))
	return current, nil
}

// ToggleActive flips the active flag.
func (s *CustomerService) ToggleActive(ctx context.Context, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	current.Active = !current.Active
	if err := s.repo.Save(ctx, current); err != nil {
		return err
	}

	s.caches.evictAll(ctx, cache.CustomersList)
	s.caches.evict(ctx, cache.CustomerByID, cache.KeyID(id))

	s.logger.Info("customer active toggled",
		zap.Int64("customer_id", id),
		zap.Bool("active", current.Active),
	)
	return nil
}

// Delete removes a customer. A customer referenced by orders is protected
// by the store's FK constraint, which comes back as a ConflictError.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "customer", ID: id}
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.caches.evictAll(ctx, cache.CustomersList)
	s.caches.evict(ctx, cache.CustomerByID, cache.KeyID(id))

	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}
