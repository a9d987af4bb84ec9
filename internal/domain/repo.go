package domain

import (
	"context"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindAllActive(ctx context.Context) ([]Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	DeleteByID(ctx context.Context, id int64) error
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id int64) (*Restaurant, error)
	FindAll(ctx context.Context) ([]Restaurant, error)
	FindByCategory(ctx context.Context, category string) ([]Restaurant, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, r *Restaurant) error
	Save(ctx context.Context, r *Restaurant) error
	DeleteByID(ctx context.Context, id int64) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Save(ctx context.Context, p *Product) error
	DeleteByID(ctx context.Context, id int64) error
}

type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	// Create persists the order and all of its items atomically.
	Create(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
}
