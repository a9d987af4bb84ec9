package cache

import (
	"strconv"
	"time"
)

// Cache names, one per read pattern. List caches are invalidated wholesale on
// writes; by-id caches are written through.
const (
	CustomersList         = "customers-list"
	CustomerByID          = "customer-by-id"
	RestaurantsList       = "restaurants-list"
	RestaurantsByCategory = "restaurants-by-category"
	RestaurantByID        = "restaurant-by-id"
	ProductsList          = "products-list"
	ProductByID           = "product-by-id"
	OrdersList            = "orders-list"
	OrderByID             = "order-by-id"
)

// KeyAll is the constant key used by unfiltered list caches.
const KeyAll = "all"

// Policy fixes the TTL and capacity of one named cache. The TTL bounds the
// maximum staleness a cache hit may expose; an entry can always be evicted
// earlier by an invalidation.
type Policy struct {
	Name string
	TTL  time.Duration
	Size int
}

// Policies returns the full cache policy table. Built once at startup and
// treated as immutable afterwards.
func Policies() []Policy {
	return []Policy{
		{Name: CustomersList, TTL: 30 * time.Second, Size: 8},
		{Name: CustomerByID, TTL: 120 * time.Second, Size: 1024},
		{Name: RestaurantsList, TTL: 30 * time.Second, Size: 8},
		{Name: RestaurantsByCategory, TTL: 30 * time.Second, Size: 128},
		{Name: RestaurantByID, TTL: 120 * time.Second, Size: 1024},
		{Name: ProductsList, TTL: 45 * time.Second, Size: 8},
		{Name: ProductByID, TTL: 120 * time.Second, Size: 4096},
		{Name: OrdersList, TTL: 20 * time.Second, Size: 8},
		{Name: OrderByID, TTL: 60 * time.Second, Size: 4096},
	}
}

// Table indexes the policy rows by cache name.
type Table map[string]Policy

func NewTable() Table {
	t := make(Table)
	for _, p := range Policies() {
		t[p.Name] = p
	}
	return t
}

func (t Table) TTL(name string) time.Duration {
	return t[name].TTL
}

// KeyID derives the cache key for a single-entity cache.
func KeyID(id int64) string {
	return strconv.FormatInt(id, 10)
}
