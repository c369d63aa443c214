package store

import (
	"context"

	"github.com/tokosena/tokosena/server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Products() Products
	Categories() Categories
	Reviews() Reviews
	Wishlists() Wishlists
}

type Products interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, productID string) (*model.Product, error)
	// List returns the entire product collection. The fuzzy engine scans it
	// client-side; catalogs are assumed to stay in the low thousands.
	List(ctx context.Context) ([]*model.Product, error)
	// ListNameRange is a lexicographic range scan on the lowercased name
	// field, ordered ascending, hard-limited at the query level. Suggestion
	// prefix matching is expressed as [prefix, prefix+sentinel).
	ListNameRange(ctx context.Context, lo, hi string, limit int) ([]*model.Suggestion, error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	SetImageURL(ctx context.Context, productID, url string) error
	Delete(ctx context.Context, productID string) error
}

type Categories interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, categoryID string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

type Reviews interface {
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

type Wishlists interface {
	Add(ctx context.Context, item *model.WishlistItem) error
	Remove(ctx context.Context, customerID, productID string) error
	List(ctx context.Context, customerID string) ([]*model.WishlistItem, error)
}
