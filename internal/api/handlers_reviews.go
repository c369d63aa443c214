package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tokosena/tokosena/server/internal/api/respond"
	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/services"
)

// ReviewHandler provides HTTP transport for product reviews.
type ReviewHandler struct {
	svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// CreateReview POST /api/products/{productId}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var rv model.Review
	if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	rv.ProductID = mux.Vars(r)["productId"]
	out, err := h.svc.CreateReview(r.Context(), &rv)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListReviews GET /api/products/{productId}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListReviews(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if out == nil {
		out = []*model.Review{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(out),
		"reviews": out,
	})
}

// DeleteReview DELETE /api/reviews/{reviewId}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteReview(r.Context(), mux.Vars(r)["reviewId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
