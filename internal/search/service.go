// Package search implements the storefront's client-side product search: a
// prefix suggestion index backed by a store range scan, and a fuzzy full-text
// pass over the whole catalog. Both memoize results in TTL caches keyed by
// the normalized query.
//
// The fuzzy pass deliberately loads the entire product collection on a cache
// miss; matching spans three fields of the full record, so server-side
// filtering would change search semantics. This caps out at catalogs in the
// low thousands of items; revisit with a real inverted index beyond that.
package search

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
	"github.com/tokosena/tokosena/server/internal/textkey"
	"github.com/tokosena/tokosena/server/internal/ttlcache"
)

// highSentinel closes the half-open range [prefix, prefix+highSentinel) used
// for the suggestion range scan.
const highSentinel = "￿"

const minQueryRunes = 2

// Options tune the search service. Zero values fall back to the defaults.
type Options struct {
	CacheTTL        time.Duration
	SuggestionLimit int
	ScoreThreshold  float64
	MinMatchChars   int
}

func (o *Options) fill() {
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
	if o.SuggestionLimit <= 0 {
		o.SuggestionLimit = 5
	}
	if o.ScoreThreshold <= 0 {
		o.ScoreThreshold = defaultScoreThreshold
	}
	if o.MinMatchChars <= 0 {
		o.MinMatchChars = defaultMinMatchChars
	}
}

// Service answers suggestion and full-search queries.
type Service struct {
	store store.Store
	log   zerolog.Logger
	opt   Options

	suggestions *ttlcache.Cache[[]*model.Suggestion]
	results     *ttlcache.Cache[[]*model.Product]
}

// NewService constructs a search service with its own caches.
func NewService(st store.Store, log zerolog.Logger, opt Options) *Service {
	opt.fill()
	return &Service{
		store:       st,
		log:         log,
		opt:         opt,
		suggestions: ttlcache.New[[]*model.Suggestion](opt.CacheTTL),
		results:     ttlcache.New[[]*model.Product](opt.CacheTTL),
	}
}

// Suggest returns up to the configured number of products whose name starts
// with the query, ordered by name. Inputs shorter than two runes after
// normalization return empty without touching the store.
func (s *Service) Suggest(ctx context.Context, raw string) ([]*model.Suggestion, error) {
	q := textkey.Normalize(raw)
	if utf8.RuneCountInString(q) < minQueryRunes {
		return nil, nil
	}

	key := textkey.SuggestionKey(q)
	if cached, ok := s.suggestions.Get(key); ok {
		return cached, nil
	}

	items, err := s.store.Products().ListNameRange(ctx, q, q+highSentinel, s.opt.SuggestionLimit)
	if err != nil {
		return nil, err
	}
	s.suggestions.Set(key, items)
	return items, nil
}

// Search runs the fuzzy pass over the full catalog and returns matching
// products, best match first. Repeated identical queries within the TTL
// window are served from cache without a store read.
func (s *Service) Search(ctx context.Context, raw string) ([]*model.Product, error) {
	q := textkey.Normalize(raw)
	if utf8.RuneCountInString(q) < s.opt.MinMatchChars {
		return nil, nil
	}

	key := textkey.SearchKey(q)
	if cached, ok := s.results.Get(key); ok {
		return cached, nil
	}

	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		// category names are a secondary search field; proceed without them
		s.log.Warn().Err(err).Msg("category fetch failed, searching name and description only")
		categories = nil
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}

	ranked := rank(q, products, names, matcherOptions{
		threshold: s.opt.ScoreThreshold,
		minMatch:  s.opt.MinMatchChars,
	})
	s.results.Set(key, ranked)
	return ranked, nil
}

// Filter applies the caller-side predicate pass. It never happens inside the
// engine so fuzzy semantics stay independent of category and price bounds.
func Filter(products []*model.Product, f model.SearchFilter) []*model.Product {
	out := make([]*model.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// InvalidateAll drops both caches. Catalog writes call this so search does
// not serve deleted or renamed products for the rest of a TTL window.
func (s *Service) InvalidateAll() {
	s.suggestions.Purge()
	s.results.Purge()
}
