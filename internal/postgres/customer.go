package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deliverytech/delivery/internal/domain"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, active
		FROM customers
		WHERE id=$1
		`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "customer", ID: id}
	}
	if err != nil {
		return nil, translate(err, "")
	}
	return &c, nil
}

func (r *CustomerRepository) FindAllActive(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, active
		FROM customers
		WHERE active
		ORDER BY id
		`)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Active); err != nil {
			return nil, translate(err, "")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return out, nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE email=$1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, translate(err, email)
	}
	return exists, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id=$1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, translate(err, "")
	}
	return exists, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, active)
		VALUES ($1,$2,$3,$4)
		RETURNING id
		`, c.Name, c.Email, c.Phone, c.Active).Scan(&c.ID)
	if err != nil {
		return translate(err, c.Email)
	}
	return nil
}

func (r *CustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET name=$2, email=$3, phone=$4, active=$5
		WHERE id=$1
		`, c.ID, c.Name, c.Email, c.Phone, c.Active)
	if err != nil {
		return translate(err, c.Email)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "customer", ID: c.ID}
	}
	return nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return translate(err, "")
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "customer", ID: id}
	}
	return nil
}
