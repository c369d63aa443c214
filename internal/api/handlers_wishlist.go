package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tokosena/tokosena/server/internal/api/respond"
	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/services"
)

// WishlistHandler provides HTTP transport for customer wishlists.
type WishlistHandler struct {
	svc *services.WishlistService
}

func NewWishlistHandler(svc *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

// Add PUT /api/customers/{customerId}/wishlist/{productId}
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Add(r.Context(), vars["customerId"], vars["productId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Remove DELETE /api/customers/{customerId}/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Remove(r.Context(), vars["customerId"], vars["productId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List GET /api/customers/{customerId}/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context(), mux.Vars(r)["customerId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if out == nil {
		out = []*model.WishlistItem{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(out),
		"items": out,
	})
}
