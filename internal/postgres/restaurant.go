package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deliverytech/delivery/internal/domain"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, category, delivery_fee, delivery_time_minutes, active
		FROM restaurants
		WHERE id=$1
		`, id).Scan(&rest.ID, &rest.Name, &rest.Phone, &rest.Category,
		&rest.DeliveryFee, &rest.DeliveryTimeMinutes, &rest.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "restaurant", ID: id}
	}
	if err != nil {
		return nil, translate(err, "")
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindAll(ctx context.Context) ([]domain.Restaurant, error) {
	return r.query(ctx, `
		SELECT id, name, phone, category, delivery_fee, delivery_time_minutes, active
		FROM restaurants
		ORDER BY id
		`)
}

func (r *RestaurantRepository) FindByCategory(ctx context.Context, category string) ([]domain.Restaurant, error) {
	return r.query(ctx, `
		SELECT id, name, phone, category, delivery_fee, delivery_time_minutes, active
		FROM restaurants
		WHERE category=$1
		ORDER BY id
		`, category)
}

func (r *RestaurantRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Restaurant, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Phone, &rest.Category,
			&rest.DeliveryFee, &rest.DeliveryTimeMinutes, &rest.Active); err != nil {
			return nil, translate(err, "")
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

func (r *RestaurantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM restaurants WHERE name=$1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, translate(err, name)
	}
	return exists, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO restaurants (name, phone, category, delivery_fee, delivery_time_minutes, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
		`, rest.Name, rest.Phone, rest.Category, rest.DeliveryFee,
		rest.DeliveryTimeMinutes, rest.Active).Scan(&rest.ID)
	if err != nil {
		return translate(err, rest.Name)
	}
	return nil
}

func (r *RestaurantRepository) Save(ctx context.Context, rest *domain.Restaurant) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE restaurants
		SET name=$2, phone=$3, category=$4, delivery_fee=$5, delivery_time_minutes=$6, active=$7
		WHERE id=$1
		`, rest.ID, rest.Name, rest.Phone, rest.Category, rest.DeliveryFee,
		rest.DeliveryTimeMinutes, rest.Active)
	if err != nil {
		return translate(err, rest.Name)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "restaurant", ID: rest.ID}
	}
	return nil
}

func (r *RestaurantRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id=$1`, id)
	if err != nil {
		return translate(err, "")
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "restaurant", ID: id}
	}
	return nil
}
