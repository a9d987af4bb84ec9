// loadgen seeds the API with one restaurant and a few customers, then fires
// random orders at a fixed rate. Handy for warming caches and watching hit
// ratios under load.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"
)

type client struct {
	base string
	http *http.Client
}

func (c *client) post(path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.base+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type created struct {
	ID int64 `json:"id"`
}

func seed(c *client, customers int) (restaurantID int64, productIDs, customerIDs []int64, err error) {
	run := time.Now().UnixNano()

	var r created
	if err = c.post("/api/restaurants/", map[string]any{
		"name":                  fmt.Sprintf("Loadgen Diner %d", run),
		"category":              "loadgen",
		"phone":                 "000",
		"delivery_fee":          3.5,
		"delivery_time_minutes": 30,
	}, &r); err != nil {
		return
	}
	restaurantID = r.ID

	for i := 0; i < 5; i++ {
		var p created
		if err = c.post("/api/products/", map[string]any{
			"name":          fmt.Sprintf("Dish %d", i),
			"price":         5.0 + float64(rand.Intn(2000))/100,
			"restaurant_id": restaurantID,
		}, &p); err != nil {
			return
		}
		productIDs = append(productIDs, p.ID)
	}

	for i := 0; i < customers; i++ {
		var cu created
		if err = c.post("/api/customers/", map[string]any{
			"name":  fmt.Sprintf("Loadgen User %d", i),
			"email": fmt.Sprintf("loadgen-%d-%d@example.com", run, i),
			"phone": "000",
		}, &cu); err != nil {
			return
		}
		customerIDs = append(customerIDs, cu.ID)
	}
	return
}

func main() {
	var (
		base      = flag.String("base", "http://localhost:8080", "API base URL")
		rate      = flag.Int("rate", 10, "orders per second")
		duration  = flag.Duration("duration", 30*time.Second, "how long to run")
		customers = flag.Int("customers", 10, "customers to seed")
	)
	flag.Parse()

	c := &client{base: *base, http: &http.Client{Timeout: 5 * time.Second}}

	restaurantID, productIDs, customerIDs, err := seed(c, *customers)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seeded restaurant=%d products=%d customers=%d", restaurantID, len(productIDs), len(customerIDs))

	var sent, failed atomic.Int64
	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()
	stop := time.After(*duration)

	for {
		select {
		case <-ticker.C:
			items := make([]map[string]any, 0, 3)
			for i := 0; i <= rand.Intn(3); i++ {
				items = append(items, map[string]any{
					"product_id": productIDs[rand.Intn(len(productIDs))],
					"quantity":   1 + rand.Intn(3),
				})
			}
			err := c.post("/api/orders/", map[string]any{
				"customer_id":      customerIDs[rand.Intn(len(customerIDs))],
				"restaurant_id":    restaurantID,
				"delivery_address": fmt.Sprintf("Street %d", rand.Intn(100)),
				"items":            items,
			}, nil)
			if err != nil {
				failed.Add(1)
				log.Printf("order failed: %v", err)
			} else {
				sent.Add(1)
			}
		case <-stop:
			log.Printf("done: sent=%d failed=%d", sent.Load(), failed.Load())
			return
		}
	}
}
