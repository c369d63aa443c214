package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	products   []*model.Product
	categories []*model.Category
	fetchErr   error
	listCalls  int
}

func (f *fakeStore) Products() store.Products     { return &fakeProducts{f} }
func (f *fakeStore) Categories() store.Categories { return &fakeCategories{f} }
func (f *fakeStore) Reviews() store.Reviews       { panic("unused") }
func (f *fakeStore) Wishlists() store.Wishlists   { panic("unused") }

type fakeProducts struct{ p *fakeStore }

func (f *fakeProducts) List(context.Context) ([]*model.Product, error) {
	f.p.listCalls++
	if f.p.fetchErr != nil {
		return nil, f.p.fetchErr
	}
	return f.p.products, nil
}
func (f *fakeProducts) Create(context.Context, *model.Product) (*model.Product, error) {
	panic("unused")
}
func (f *fakeProducts) GetByID(context.Context, string) (*model.Product, error) { panic("unused") }
func (f *fakeProducts) ListNameRange(context.Context, string, string, int) ([]*model.Suggestion, error) {
	panic("unused")
}
func (f *fakeProducts) Update(context.Context, *model.Product) (*model.Product, error) {
	panic("unused")
}
func (f *fakeProducts) SetImageURL(context.Context, string, string) error { panic("unused") }
func (f *fakeProducts) Delete(context.Context, string) error              { panic("unused") }

type fakeCategories struct{ p *fakeStore }

func (f *fakeCategories) List(context.Context) ([]*model.Category, error) {
	if f.p.fetchErr != nil {
		return nil, f.p.fetchErr
	}
	return f.p.categories, nil
}
func (f *fakeCategories) Create(context.Context, *model.Category) (*model.Category, error) {
	panic("unused")
}
func (f *fakeCategories) GetByID(context.Context, string) (*model.Category, error) { panic("unused") }
func (f *fakeCategories) Delete(context.Context, string) error                     { panic("unused") }

func stationeryStore() *fakeStore {
	return &fakeStore{
		products: []*model.Product{
			{ProductID: "p1", Name: "Pen", Description: "Blue ink", CategoryID: "c1", Price: 1000},
		},
		categories: []*model.Category{
			{CategoryID: "c1", Name: "Stationery"},
		},
	}
}

// --- Tests ---

func TestContextEmptyCatalogReturnsSentinel(t *testing.T) {
	b := NewContextBuilder(&fakeStore{}, zerolog.Nop(), time.Minute, "Rp")
	got := b.Context(context.Background())
	assert.Equal(t, NoCatalogSentinel, got)
}

func TestContextFetchFailureReturnsSentinel(t *testing.T) {
	st := &fakeStore{fetchErr: errors.New("db down")}
	b := NewContextBuilder(st, zerolog.Nop(), time.Minute, "Rp")
	assert.Equal(t, NoCatalogSentinel, b.Context(context.Background()))
}

func TestContextRendersGroupedCatalog(t *testing.T) {
	b := NewContextBuilder(stationeryStore(), zerolog.Nop(), time.Minute, "Rp")
	got := b.Context(context.Background())

	assert.Contains(t, got, "STATIONERY")
	assert.Contains(t, got, "Pen")
	assert.Contains(t, got, "1,000")
	assert.Contains(t, got, "Blue ink")
	assert.Contains(t, got, "Total products: 1")
	assert.Contains(t, got, "Categories: Stationery")
}

func TestContextUnresolvedCategoryFallsBack(t *testing.T) {
	st := stationeryStore()
	st.products = append(st.products, &model.Product{
		ProductID: "p2", Name: "Mystery Box", Description: "Sealed", CategoryID: "missing", Price: 5000,
	})
	b := NewContextBuilder(st, zerolog.Nop(), time.Minute, "Rp")
	got := b.Context(context.Background())

	assert.Contains(t, got, strings.ToUpper(uncategorizedBucket))
	assert.Contains(t, got, "Mystery Box")
}

func TestContextSnapshotReusedWithinTTL(t *testing.T) {
	st := stationeryStore()
	b := NewContextBuilder(st, zerolog.Nop(), 5*time.Minute, "Rp")
	ctx := context.Background()

	now := time.Now()
	b.now = func() time.Time { return now }

	b.Context(ctx)
	b.Context(ctx)
	assert.Equal(t, 1, st.listCalls)

	now = now.Add(5*time.Minute + time.Second)
	b.Context(ctx)
	assert.Equal(t, 2, st.listCalls)
}

func TestContextReusesStaleSnapshotOnRefreshFailure(t *testing.T) {
	st := stationeryStore()
	b := NewContextBuilder(st, zerolog.Nop(), time.Minute, "Rp")
	ctx := context.Background()

	now := time.Now()
	b.now = func() time.Time { return now }

	first := b.Context(ctx)
	require.Contains(t, first, "Pen")

	now = now.Add(2 * time.Minute)
	st.fetchErr = errors.New("db down")
	second := b.Context(ctx)
	assert.Equal(t, first, second)
}

func TestRefreshIgnoresTTL(t *testing.T) {
	st := stationeryStore()
	b := NewContextBuilder(st, zerolog.Nop(), time.Hour, "Rp")
	ctx := context.Background()

	b.Context(ctx)
	require.Equal(t, 1, st.listCalls)

	require.NoError(t, b.Refresh(ctx))
	assert.Equal(t, 2, st.listCalls)

	st.fetchErr = errors.New("db down")
	assert.Error(t, b.Refresh(ctx))
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		250000:     "250,000",
		1234567:    "1,234,567",
		1234567.89: "1,234,567.89",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPrice(in), "price %v", in)
	}
}
