package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/application/service"
	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, id int64, changes domain.Customer) (*domain.Customer, error)
	ToggleActive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type RestaurantService interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Restaurant, error)
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	Create(ctx context.Context, r *domain.Restaurant) error
	Update(ctx context.Context, id int64, changes domain.Restaurant) (*domain.Restaurant, error)
	ToggleActive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id int64, changes domain.Product) (*domain.Product, error)
	ToggleActive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, req service.NewOrder) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, next domain.OrderStatus) (*domain.Order, error)
}

type Server struct {
	customers   CustomerService
	restaurants RestaurantService
	products    ProductService
	orders      OrderService
	router      chi.Router
	logger      *zap.Logger
	metrics     observability.Metrics
}

func New(
	customers CustomerService,
	restaurants RestaurantService,
	products ProductService,
	orders OrderService,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Server {
	s := &Server{
		customers:   customers,
		restaurants: restaurants,
		products:    products,
		orders:      orders,
		router:      chi.NewRouter(),
		logger:      logger,
		metrics:     metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(ServerTimingApp(s.metrics))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Post("/", s.createCustomer)
			r.Get("/{id}", s.getCustomer)
			r.Put("/{id}", s.updateCustomer)
			r.Patch("/{id}/status", s.toggleCustomer)
			r.Delete("/{id}", s.deleteCustomer)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", s.listRestaurants)
			r.Post("/", s.createRestaurant)
			r.Get("/category/{category}", s.listRestaurantsByCategory)
			r.Get("/{id}", s.getRestaurant)
			r.Put("/{id}", s.updateRestaurant)
			r.Patch("/{id}/status", s.toggleRestaurant)
			r.Delete("/{id}", s.deleteRestaurant)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.createProduct)
			r.Get("/{id}", s.getProduct)
			r.Put("/{id}", s.updateProduct)
			r.Patch("/{id}/status", s.toggleProduct)
			r.Delete("/{id}", s.deleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Post("/", s.createOrder)
			r.Get("/{id}", s.getOrder)
			r.Post("/{id}/status", s.updateOrderStatus)
		})
	})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}
