package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := New(db)
	require.NoError(t, err)
	return s
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cat, err := s.Categories().Create(ctx, &model.Category{Name: "Footwear"})
	require.NoError(t, err)

	created, err := s.Products().Create(ctx, &model.Product{
		Name:        "Blue Running Shoes",
		Description: "Lightweight mesh runners",
		CategoryID:  cat.CategoryID,
		Price:       250000,
		Stock:       12,
		Sizes:       []string{"40", "41", "42"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ProductID)
	require.False(t, created.CreationTime.IsZero())

	got, err := s.Products().GetByID(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Running Shoes", got.Name)
	assert.Equal(t, []string{"40", "41", "42"}, got.Sizes)
	assert.Equal(t, 250000.0, got.Price)

	got.Price = 199000
	got.Stock = 8
	updated, err := s.Products().Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, 199000.0, updated.Price)
	assert.Equal(t, 8, updated.Stock)

	require.NoError(t, s.Products().SetImageURL(ctx, created.ProductID, "https://img.example/shoes.jpg"))
	got, err = s.Products().GetByID(ctx, created.ProductID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://img.example/shoes.jpg", *got.ImageURL)

	require.NoError(t, s.Products().Delete(ctx, created.ProductID))
	_, err = s.Products().GetByID(ctx, created.ProductID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProductUpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Products().Update(ctx, &model.Product{ProductID: "nope", Name: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, s.Products().Delete(ctx, "nope"), model.ErrNotFound)
	assert.ErrorIs(t, s.Products().SetImageURL(ctx, "nope", "u"), model.ErrNotFound)
}

func TestListNameRangeIsOrderedAndCapped(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, name := range []string{"Shoes", "Shirt", "Shorts", "Hat", "Shield"} {
		_, err := s.Products().Create(ctx, &model.Product{Name: name, CategoryID: "c1", Price: 1})
		require.NoError(t, err)
	}

	got, err := s.Products().ListNameRange(ctx, "sh", "sh￿", 5)
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, sg := range got {
		names = append(names, sg.Name)
	}
	assert.Equal(t, []string{"Shield", "Shirt", "Shoes", "Shorts"}, names)

	capped, err := s.Products().ListNameRange(ctx, "sh", "sh￿", 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r, err := s.Reviews().Create(ctx, &model.Review{
		ProductID:  "p1",
		CustomerID: "cust1",
		Rating:     5,
		Comment:    "great",
	})
	require.NoError(t, err)
	require.NotEmpty(t, r.ReviewID)

	list, err := s.Reviews().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)

	require.NoError(t, s.Reviews().Delete(ctx, r.ReviewID))
	list, err = s.Reviews().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item := &model.WishlistItem{CustomerID: "cust1", ProductID: "p1"}
	require.NoError(t, s.Wishlists().Add(ctx, item))
	require.NoError(t, s.Wishlists().Add(ctx, item))

	list, err := s.Wishlists().List(ctx, "cust1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Wishlists().Remove(ctx, "cust1", "p1"))
	assert.ErrorIs(t, s.Wishlists().Remove(ctx, "cust1", "p1"), model.ErrNotFound)
}
