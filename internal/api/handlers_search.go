package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/api/respond"
	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/search"
)

// SearchHandler serves search and suggestion endpoints. Service errors degrade
// to an empty result with a warning log; a broken index must never break the
// storefront page.
type SearchHandler struct {
	svc *search.Service
	log zerolog.Logger
}

func NewSearchHandler(svc *search.Service, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: log}
}

// Suggest GET /api/search/suggestions?q=
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	suggestions, err := h.svc.Suggest(r.Context(), q)
	if err != nil {
		h.log.Warn().Err(err).Str("query", q).Msg("suggestion lookup failed, returning empty")
		suggestions = nil
	}
	if suggestions == nil {
		suggestions = []*model.Suggestion{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":       q,
		"suggestions": suggestions,
	})
}

// Search GET /api/search?q=&category=&minPrice=&maxPrice=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respond.WriteBadRequest(w, "q is required")
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	products, err := h.svc.Search(r.Context(), q)
	if err != nil {
		h.log.Warn().Err(err).Str("query", q).Msg("search failed, returning empty")
		products = nil
	}
	products = search.Filter(products, filter)

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":    q,
		"count":    len(products),
		"products": products,
	})
}

func parseFilter(r *http.Request) (model.SearchFilter, error) {
	var f model.SearchFilter
	f.CategoryID = r.URL.Query().Get("category")

	var err error
	if f.MinPrice, err = parsePriceParam(r, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePriceParam(r, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func parsePriceParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value for %s", name)
	}
	return &v, nil
}
