package rest

import (
	"encoding/json"
	"net/http"

	"product-catalog/application/services"
	"product-catalog/interfaces/http/rest/handlers"
	"product-catalog/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	productService *services.ProductService
	httpMetrics    *middleware.HTTPMetrics
	logger         *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	productService *services.ProductService,
	httpMetrics *middleware.HTTPMetrics,
	logger *zap.Logger,
) *Router {
	return &Router{
		productService: productService,
		httpMetrics:    httpMetrics,
		logger:         logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.httpMetrics != nil {
		router.Use(rt.httpMetrics.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Anything unmatched, including a known path with the wrong method,
	// answers 404.
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Get("/health", rt.healthCheck)
	if rt.httpMetrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.httpMetrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			productHandler := handlers.NewProductHandler(rt.productService, rt.logger)
			r.Post("/", productHandler.CreateProduct)
			r.Get("/", productHandler.ListProducts)
			r.Get("/{productId}", productHandler.GetProduct)
			r.Put("/{productId}", productHandler.UpdateProduct)
			r.Delete("/{productId}", productHandler.DeleteProduct)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(handlers.ErrorResponse{Error: "Not Found"})
}
