package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	products   []*model.Product
	categories []*model.Category

	listCalls      int
	rangeCalls     int
	listErr        error
	rangeErr       error
	lastRangeLo    string
	lastRangeHi    string
	lastRangeLimit int
}

func (f *fakeStore) Products() store.Products     { return &fakeProducts{f} }
func (f *fakeStore) Categories() store.Categories { return &fakeCategories{f} }
func (f *fakeStore) Reviews() store.Reviews       { panic("unused") }
func (f *fakeStore) Wishlists() store.Wishlists   { panic("unused") }

type fakeProducts struct{ p *fakeStore }

func (f *fakeProducts) Create(context.Context, *model.Product) (*model.Product, error) {
	panic("unused")
}
func (f *fakeProducts) GetByID(context.Context, string) (*model.Product, error) { panic("unused") }
func (f *fakeProducts) Update(context.Context, *model.Product) (*model.Product, error) {
	panic("unused")
}
func (f *fakeProducts) SetImageURL(context.Context, string, string) error { panic("unused") }
func (f *fakeProducts) Delete(context.Context, string) error              { panic("unused") }

func (f *fakeProducts) List(context.Context) ([]*model.Product, error) {
	f.p.listCalls++
	if f.p.listErr != nil {
		return nil, f.p.listErr
	}
	return f.p.products, nil
}

func (f *fakeProducts) ListNameRange(_ context.Context, lo, hi string, limit int) ([]*model.Suggestion, error) {
	f.p.rangeCalls++
	f.p.lastRangeLo, f.p.lastRangeHi, f.p.lastRangeLimit = lo, hi, limit
	if f.p.rangeErr != nil {
		return nil, f.p.rangeErr
	}
	var out []*model.Suggestion
	for _, p := range f.p.products {
		name := []rune(lowercase(p.Name))
		if string(name) >= lo && string(name) < hi {
			out = append(out, &model.Suggestion{ProductID: p.ProductID, Name: p.Name, CategoryID: p.CategoryID})
		}
	}
	sortByName(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCategories struct{ p *fakeStore }

func (f *fakeCategories) Create(context.Context, *model.Category) (*model.Category, error) {
	panic("unused")
}
func (f *fakeCategories) GetByID(context.Context, string) (*model.Category, error) { panic("unused") }
func (f *fakeCategories) Delete(context.Context, string) error                     { panic("unused") }
func (f *fakeCategories) List(context.Context) ([]*model.Category, error) {
	return f.p.categories, nil
}

func lowercase(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + 32
		}
	}
	return string(out)
}

func sortByName(items []*model.Suggestion) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && lowercase(items[j-1].Name) > lowercase(items[j].Name); j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}

func catalogStore() *fakeStore {
	return &fakeStore{
		products: []*model.Product{
			{ProductID: "p1", Name: "Blue Running Shoes", Description: "Lightweight mesh runners", CategoryID: "c1", Price: 250000},
			{ProductID: "p2", Name: "Red Jacket", Description: "Warm winter jacket", CategoryID: "c2", Price: 400000},
			{ProductID: "p3", Name: "Shirt", CategoryID: "c2", Price: 90000},
			{ProductID: "p4", Name: "Shorts", CategoryID: "c1", Price: 120000},
			{ProductID: "p5", Name: "Hat", CategoryID: "c2", Price: 50000},
			{ProductID: "p6", Name: "Shield", CategoryID: "c3", Price: 75000},
			{ProductID: "p7", Name: "Shoes", CategoryID: "c1", Price: 210000},
		},
		categories: []*model.Category{
			{CategoryID: "c1", Name: "Footwear"},
			{CategoryID: "c2", Name: "Apparel"},
			{CategoryID: "c3", Name: "Accessories"},
		},
	}
}

func newTestService(st *fakeStore) *Service {
	return NewService(st, zerolog.Nop(), Options{})
}

// --- Suggest ---

func TestSuggestShortInputSkipsStore(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)

	for _, q := range []string{"", " ", "s", "  S  "} {
		got, err := svc.Suggest(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got, "query %q", q)
	}
	assert.Equal(t, 0, st.rangeCalls)
}

func TestSuggestPrefixRangeOrderedAndCapped(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)

	got, err := svc.Suggest(context.Background(), "sh")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Shield", "Shirt", "Shoes", "Shorts"}, names)

	// the cap is pushed into the query, not applied as a post-filter
	assert.Equal(t, "sh", st.lastRangeLo)
	assert.Equal(t, "sh￿", st.lastRangeHi)
	assert.Equal(t, 5, st.lastRangeLimit)
}

func TestSuggestCachesByNormalizedQuery(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, "sh")
	require.NoError(t, err)
	// textually different, same canonical query
	_, err = svc.Suggest(ctx, "  SH ")
	require.NoError(t, err)

	assert.Equal(t, 1, st.rangeCalls)
}

func TestSuggestExpiryTriggersOneRefetch(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)
	ctx := context.Background()

	now := time.Now()
	svc.suggestions.SetNowFunc(func() time.Time { return now })

	_, err := svc.Suggest(ctx, "sh")
	require.NoError(t, err)
	require.Equal(t, 1, st.rangeCalls)

	now = now.Add(5*time.Minute + time.Second)
	_, err = svc.Suggest(ctx, "sh")
	require.NoError(t, err)
	_, err = svc.Suggest(ctx, "sh")
	require.NoError(t, err)
	assert.Equal(t, 2, st.rangeCalls)
}

func TestSuggestStoreFailureSurfacesError(t *testing.T) {
	st := catalogStore()
	st.rangeErr = errors.New("backend unreachable")
	svc := newTestService(st)

	_, err := svc.Suggest(context.Background(), "sh")
	assert.Error(t, err)

	// failures are not cached
	st.rangeErr = nil
	got, err := svc.Suggest(context.Background(), "sh")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

// --- Search ---

func TestSearchFuzzyMatch(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)

	got, err := svc.Search(context.Background(), "running shoe")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Blue Running Shoes", got[0].Name)

	for _, p := range got {
		assert.NotEqual(t, "Red Jacket", p.Name)
	}
}

func TestSearchMatchesCategoryField(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)

	got, err := svc.Search(context.Background(), "footwear")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, p := range got {
		ids[p.ProductID] = true
	}
	assert.True(t, ids["p1"], "products in the Footwear category should match")
}

func TestSearchCachesFullResults(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)
	ctx := context.Background()

	_, err := svc.Search(ctx, "shoes")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "  SHOES  ")
	require.NoError(t, err)

	assert.Equal(t, 1, st.listCalls)
}

func TestSearchExpiryRefetches(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)
	ctx := context.Background()

	now := time.Now()
	svc.results.SetNowFunc(func() time.Time { return now })

	_, err := svc.Search(ctx, "shoes")
	require.NoError(t, err)
	now = now.Add(6 * time.Minute)
	_, err = svc.Search(ctx, "shoes")
	require.NoError(t, err)

	assert.Equal(t, 2, st.listCalls)
}

func TestSearchStoreFailureSurfacesError(t *testing.T) {
	st := catalogStore()
	st.listErr = errors.New("backend unreachable")
	svc := newTestService(st)

	_, err := svc.Search(context.Background(), "shoes")
	assert.Error(t, err)
}

func TestInvalidateAllForcesRefetch(t *testing.T) {
	st := catalogStore()
	svc := newTestService(st)
	ctx := context.Background()

	_, err := svc.Search(ctx, "shoes")
	require.NoError(t, err)
	svc.InvalidateAll()
	_, err = svc.Search(ctx, "shoes")
	require.NoError(t, err)

	assert.Equal(t, 2, st.listCalls)
}

// --- Filter ---

func TestFilterIsAPostPass(t *testing.T) {
	min := 100000.0
	max := 300000.0
	products := catalogStore().products

	got := Filter(products, model.SearchFilter{CategoryID: "c1", MinPrice: &min, MaxPrice: &max})
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "c1", p.CategoryID)
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}
}
