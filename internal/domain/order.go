package domain

import "time"

type OrderStatus string

const (
	StatusCreated    OrderStatus = "CREATED"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusInDelivery OrderStatus = "IN_DELIVERY"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// transitions is the full order lifecycle graph. CANCELLED is reachable
// only before the order goes out for delivery.
var transitions = map[OrderStatus][]OrderStatus{
	StatusCreated:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusInDelivery, StatusCancelled},
	StatusInDelivery: {
		StatusDelivered,
	},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusConfirmed, StatusInDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customer_id"`
	RestaurantID    int64       `json:"restaurant_id"`
	DeliveryAddress string      `json:"delivery_address"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}

// OrderItem keeps the product price as it was when the order was placed.
// Later product price changes must not affect existing orders.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ComputeTotal is the only source of truth for Order.Total.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}
