package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deliverytech/delivery/internal/domain"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, price, restaurant_id, active
		FROM products
		WHERE id=$1
		`, id).Scan(&p.ID, &p.Name, &p.Price, &p.RestaurantID, &p.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, translate(err, "")
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, restaurant_id, active
		FROM products
		ORDER BY id
		`)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.RestaurantID, &p.Active); err != nil {
			return nil, translate(err, "")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, restaurant_id, active)
		VALUES ($1,$2,$3,$4)
		RETURNING id
		`, p.Name, p.Price, p.RestaurantID, p.Active).Scan(&p.ID)
	if err != nil {
		return translate(err, p.Name)
	}
	return nil
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name=$2, price=$3, restaurant_id=$4, active=$5
		WHERE id=$1
		`, p.ID, p.Name, p.Price, p.RestaurantID, p.Active)
	if err != nil {
		return translate(err, p.Name)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: p.ID}
	}
	return nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return translate(err, "")
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}
