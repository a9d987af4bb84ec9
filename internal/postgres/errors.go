package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deliverytech/delivery/internal/domain"
)

const (
	codeUniqueViolation = "23505"
	codeFKViolation     = "23503"
)

// constraintFields maps database constraint names back to the domain field
// they guard, so a store-level violation surfaces exactly like a pre-flight
// uniqueness check.
var constraintFields = map[string]string{
	"customers_email_key":         "email",
	"restaurants_name_key":        "name",
	"orders_customer_id_fkey":     "customer_id",
	"orders_restaurant_id_fkey":   "restaurant_id",
	"order_items_product_id_fkey": "product_id",
	"products_restaurant_id_fkey": "restaurant_id",
}

// translate normalizes driver errors into the domain taxonomy. Constraint
// violations become ConflictError; everything else is treated as a transient
// store failure.
func translate(err error, value string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeFKViolation:
			field := constraintFields[pgErr.ConstraintName]
			if field == "" {
				field = pgErr.ConstraintName
			}
			return &domain.ConflictError{Field: field, Value: value}
		}
	}
	return &domain.StoreUnavailableError{Err: err}
}
