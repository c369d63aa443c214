package api

import (
	"github.com/gorilla/mux"

	"github.com/tokosena/tokosena/server/internal/api/recovery"
)

// Handlers groups the transport handlers the router wires up. Assistant is
// optional; when nil the chat endpoints are not registered.
type Handlers struct {
	Search    *SearchHandler
	Catalog   *CatalogHandler
	Reviews   *ReviewHandler
	Wishlist  *WishlistHandler
	Assistant *AssistantHandler
	Health    *HealthHandler
}

// NewRouter creates the HTTP router with all API routes. Services are built by
// the caller and injected; the router does no construction of its own.
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	// Health endpoints
	router.HandleFunc("/api/health", h.Health.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", h.Health.CheckStoreHealth).Methods("GET")

	// Search endpoints
	router.HandleFunc("/api/search/suggestions", h.Search.Suggest).Methods("GET")
	router.HandleFunc("/api/search", h.Search.Search).Methods("GET")

	// Catalog endpoints
	router.HandleFunc("/api/products", h.Catalog.CreateProduct).Methods("POST")
	router.HandleFunc("/api/products", h.Catalog.ListProducts).Methods("GET")
	router.HandleFunc("/api/products/{productId}", h.Catalog.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{productId}", h.Catalog.UpdateProduct).Methods("PUT")
	router.HandleFunc("/api/products/{productId}", h.Catalog.DeleteProduct).Methods("DELETE")
	router.HandleFunc("/api/products/{productId}/image", h.Catalog.UploadProductImage).Methods("POST")
	router.HandleFunc("/api/categories", h.Catalog.CreateCategory).Methods("POST")
	router.HandleFunc("/api/categories", h.Catalog.ListCategories).Methods("GET")
	router.HandleFunc("/api/categories/{categoryId}", h.Catalog.DeleteCategory).Methods("DELETE")

	// Review endpoints
	router.HandleFunc("/api/products/{productId}/reviews", h.Reviews.CreateReview).Methods("POST")
	router.HandleFunc("/api/products/{productId}/reviews", h.Reviews.ListReviews).Methods("GET")
	router.HandleFunc("/api/reviews/{reviewId}", h.Reviews.DeleteReview).Methods("DELETE")

	// Wishlist endpoints
	router.HandleFunc("/api/customers/{customerId}/wishlist", h.Wishlist.List).Methods("GET")
	router.HandleFunc("/api/customers/{customerId}/wishlist/{productId}", h.Wishlist.Add).Methods("PUT")
	router.HandleFunc("/api/customers/{customerId}/wishlist/{productId}", h.Wishlist.Remove).Methods("DELETE")

	// Assistant endpoints
	if h.Assistant != nil {
		router.HandleFunc("/api/assistant/chat", h.Assistant.Chat).Methods("POST")
		router.HandleFunc("/api/assistant/context/refresh", h.Assistant.RefreshContext).Methods("POST")
	}

	return router
}
