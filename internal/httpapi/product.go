package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/deliverytech/delivery/internal/domain"
)

type productRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	RestaurantID int64   `json:"restaurant_id"`
}

func (req productRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.Price < 0 {
		return errors.New("price must not be negative")
	}
	if req.RestaurantID <= 0 {
		return errors.New("restaurant_id is required")
	}
	return nil
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	p, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	p := domain.Product{Name: req.Name, Price: req.Price, RestaurantID: req.RestaurantID}
	if err := s.products.Create(r.Context(), &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	var req productRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := s.products.Update(r.Context(), id, domain.Product{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) toggleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	if err := s.products.ToggleActive(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	if err := s.products.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
