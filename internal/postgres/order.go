package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deliverytech/delivery/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order and its items in one transaction. A partially
// written order is never visible.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err, "")
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, restaurant_id, delivery_address, total, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
		`, o.CustomerID, o.RestaurantID, o.DeliveryAddress, o.Total, o.Status, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return translate(err, "")
	}

	for _, it := range o.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1,$2,$3,$4)
			`, o.ID, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return translate(err, "")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return translate(err, "")
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, restaurant_id, delivery_address, total, status, created_at
		FROM orders
		WHERE id=$1
		`, id).Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.DeliveryAddress,
		&o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, translate(err, "")
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, restaurant_id, delivery_address, total, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		`)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.DeliveryAddress,
			&o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, translate(err, "")
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}

	for i := range out {
		items, err := r.items(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrderRepository) items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, quantity, unit_price
		FROM order_items
		WHERE order_id=$1
		ORDER BY id
		`, orderID)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, translate(err, "")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return items, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return translate(err, string(status))
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}
