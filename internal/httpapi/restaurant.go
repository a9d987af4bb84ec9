package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/deliverytech/delivery/internal/domain"
)

type restaurantRequest struct {
	Name                string  `json:"name"`
	Phone               string  `json:"phone"`
	Category            string  `json:"category"`
	DeliveryFee         float64 `json:"delivery_fee"`
	DeliveryTimeMinutes int     `json:"delivery_time_minutes"`
}

func (req restaurantRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.DeliveryFee < 0 {
		return errors.New("delivery_fee must not be negative")
	}
	if req.DeliveryTimeMinutes <= 0 {
		return errors.New("delivery_time_minutes must be positive")
	}
	return nil
}

func (s *Server) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := s.restaurants.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (s *Server) listRestaurantsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	restaurants, err := s.restaurants.ListByCategory(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid restaurant id")
		return
	}

	rest, err := s.restaurants.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (s *Server) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	rest := domain.Restaurant{
		Name:                req.Name,
		Phone:               req.Phone,
		Category:            req.Category,
		DeliveryFee:         req.DeliveryFee,
		DeliveryTimeMinutes: req.DeliveryTimeMinutes,
	}
	if err := s.restaurants.Create(r.Context(), &rest); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (s *Server) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid restaurant id")
		return
	}

	var req restaurantRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	rest, err := s.restaurants.Update(r.Context(), id, domain.Restaurant{
		Name:                req.Name,
		Phone:               req.Phone,
		Category:            req.Category,
		DeliveryFee:         req.DeliveryFee,
		DeliveryTimeMinutes: req.DeliveryTimeMinutes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (s *Server) toggleRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid restaurant id")
		return
	}

	if err := s.restaurants.ToggleActive(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid restaurant id")
		return
	}

	if err := s.restaurants.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
