package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/deliverytech/delivery/internal/application/service"
	"github.com/deliverytech/delivery/internal/domain"
)

type orderRequest struct {
	CustomerID      int64              `json:"customer_id"`
	RestaurantID    int64              `json:"restaurant_id"`
	DeliveryAddress string             `json:"delivery_address"`
	Items           []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (req orderRequest) validate() error {
	if req.CustomerID <= 0 {
		return errors.New("customer_id is required")
	}
	if req.RestaurantID <= 0 {
		return errors.New("restaurant_id is required")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return errors.New("delivery_address is required")
	}
	if len(req.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, it := range req.Items {
		if it.ProductID <= 0 {
			return errors.New("item product_id is required")
		}
		if it.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
	}
	return nil
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid order id")
		return
	}

	o, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	newOrder := service.NewOrder{
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		DeliveryAddress: req.DeliveryAddress,
		Items:           make([]service.NewOrderItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		newOrder.Items = append(newOrder.Items, service.NewOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	o, err := s.orders.Create(r.Context(), newOrder)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid order id")
		return
	}

	var req statusRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "bad json")
		return
	}
	if req.Status == "" {
		badRequest(w, "status is required")
		return
	}

	o, err := s.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
