package assistant

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// NoCatalogSentinel is returned when no catalog snapshot could ever be
// fetched. Callers must treat it as "context unavailable", not "zero
// products".
const NoCatalogSentinel = "no product information available"

// uncategorizedBucket collects products whose category id does not resolve
// in the snapshot.
const uncategorizedBucket = "Uncategorized"

// ContextBuilder renders the catalog into the retrieval block injected into
// assistant prompts. It keeps one cached CatalogSnapshot with a fixed TTL:
// the same expiry pattern as the search caches, but a single slot, so the
// snapshot can never mix products from one fetch with categories from
// another. The snapshot is owned here exclusively; the search caches are
// independent even though both read the same collections.
type ContextBuilder struct {
	store    store.Store
	log      zerolog.Logger
	ttl      time.Duration
	currency string

	mu   sync.Mutex
	snap *model.CatalogSnapshot

	// now is swappable for tests.
	now func() time.Time
}

// NewContextBuilder constructs a builder with an empty snapshot slot.
func NewContextBuilder(st store.Store, log zerolog.Logger, ttl time.Duration, currency string) *ContextBuilder {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ContextBuilder{store: st, log: log, ttl: ttl, currency: currency, now: time.Now}
}

// Context returns the formatted catalog block, refreshing the snapshot if it
// is absent or older than the TTL. When a refresh fails the previous snapshot
// is reused for the turn (stale but internally consistent) and the sentinel
// is returned only when no snapshot exists at all.
func (b *ContextBuilder) Context(ctx context.Context) string {
	snap := b.snapshot(ctx, false)
	if snap == nil || len(snap.Products) == 0 {
		return NoCatalogSentinel
	}
	return renderCatalog(snap, b.currency)
}

// Refresh discards the snapshot regardless of age and fetches a new one. It
// is the operator-facing invalidation hook, used after catalog updates.
func (b *ContextBuilder) Refresh(ctx context.Context) error {
	products, categories, err := b.fetch(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.snap = &model.CatalogSnapshot{Products: products, Categories: categories, FetchedAt: b.now()}
	b.mu.Unlock()
	return nil
}

func (b *ContextBuilder) snapshot(ctx context.Context, force bool) *model.CatalogSnapshot {
	b.mu.Lock()
	cur := b.snap
	fresh := cur != nil && b.now().Sub(cur.FetchedAt) < b.ttl
	b.mu.Unlock()

	if fresh && !force {
		return cur
	}

	products, categories, err := b.fetch(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("catalog snapshot refresh failed, reusing previous snapshot")
		return cur
	}

	next := &model.CatalogSnapshot{Products: products, Categories: categories, FetchedAt: b.now()}
	b.mu.Lock()
	b.snap = next
	b.mu.Unlock()
	return next
}

func (b *ContextBuilder) fetch(ctx context.Context) ([]*model.Product, []*model.Category, error) {
	products, err := b.store.Products().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := b.store.Categories().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}

// renderCatalog flattens the snapshot into the natural-language block fed to
// the model: products grouped under upper-case category headers, one line per
// product with name, price, and description, then a totals trailer.
func renderCatalog(snap *model.CatalogSnapshot, currency string) string {
	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.CategoryID] = c.Name
	}

	groups := make(map[string][]*model.Product)
	for _, p := range snap.Products {
		name := names[p.CategoryID]
		if name == "" {
			name = uncategorizedBucket
		}
		groups[name] = append(groups[name], p)
	}

	order := make([]string, 0, len(groups))
	for name := range groups {
		order = append(order, name)
	}
	sort.Strings(order)

	var sb strings.Builder
	sb.WriteString("PRODUCT CATALOG\n")
	for _, cat := range order {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(cat))
		sb.WriteString(":\n")
		for _, p := range groups[cat] {
			sb.WriteString("- ")
			sb.WriteString(p.Name)
			sb.WriteString(" | ")
			sb.WriteString(currency)
			sb.WriteString(" ")
			sb.WriteString(formatPrice(p.Price))
			sb.WriteString(" | ")
			sb.WriteString(p.Description)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nTotal products: ")
	sb.WriteString(strconv.Itoa(len(snap.Products)))
	sb.WriteString("\nCategories: ")
	sb.WriteString(strings.Join(order, ", "))
	sb.WriteString("\n")
	return sb.String()
}

// formatPrice renders a non-negative amount with thousands separators,
// keeping any fractional part as-is.
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	n := len(intPart)
	if n <= 3 {
		return intPart + frac
	}
	var sb strings.Builder
	head := n % 3
	if head > 0 {
		sb.WriteString(intPart[:head])
	}
	for i := head; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(intPart[i : i+3])
	}
	return sb.String() + frac
}
