package domain

// Restaurant name is unique across all restaurants.
type Restaurant struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Phone               string  `json:"phone"`
	Category            string  `json:"category"`
	DeliveryFee         float64 `json:"delivery_fee"`
	DeliveryTimeMinutes int     `json:"delivery_time_minutes"`
	Active              bool    `json:"active"`
}

type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	RestaurantID int64   `json:"restaurant_id"`
	Active       bool    `json:"active"`
}
