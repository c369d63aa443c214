package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/api/respond"
	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/services"
)

// maxImageBytes caps product image uploads at 8 MiB.
const maxImageBytes = 8 << 20

// Uploader pushes image bytes to the external host and returns the public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, image []byte) (string, error)
}

// CatalogHandler provides HTTP transport for product and category management.
type CatalogHandler struct {
	svc      *services.CatalogService
	uploader Uploader
	log      zerolog.Logger
}

func NewCatalogHandler(svc *services.CatalogService, uploader Uploader, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, uploader: uploader, log: log}
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}

// CreateProduct POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.CreateProduct(r.Context(), &p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetProduct GET /api/products/{productId}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetProduct(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ListProducts GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(out),
		"products": out,
	})
}

// UpdateProduct PUT /api/products/{productId}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	p.ProductID = mux.Vars(r)["productId"]
	out, err := h.svc.UpdateProduct(r.Context(), &p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteProduct DELETE /api/products/{productId}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), mux.Vars(r)["productId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadProductImage POST /api/products/{productId}/image
// Accepts the raw image bytes as the request body, hands them to the image
// host, and stores the returned URL on the product.
func (h *CatalogHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "image uploads are not configured")
		return
	}
	productID := mux.Vars(r)["productId"]
	if _, err := h.svc.GetProduct(r.Context(), productID); err != nil {
		writeServiceError(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		respond.WriteBadRequest(w, "could not read image body")
		return
	}
	if len(body) == 0 {
		respond.WriteBadRequest(w, "image body is required")
		return
	}
	if len(body) > maxImageBytes {
		respond.WriteError(w, http.StatusRequestEntityTooLarge, "image exceeds size limit")
		return
	}

	url, err := h.uploader.Upload(r.Context(), productID, body)
	if err != nil {
		h.log.Error().Err(err).Str("productId", productID).Msg("image upload failed")
		respond.WriteError(w, http.StatusBadGateway, "image host unavailable")
		return
	}
	if err := h.svc.SetProductImage(r.Context(), productID, url); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}

// CreateCategory POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c model.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.CreateCategory(r.Context(), &c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListCategories GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(out),
		"categories": out,
	})
}

// DeleteCategory DELETE /api/categories/{categoryId}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), mux.Vars(r)["categoryId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
