package services

import (
	"context"
	"fmt"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// SearchInvalidator drops cached search results. Catalog writes call it so
// search stops serving renamed or deleted products for the rest of a TTL
// window; the assistant snapshot has its own explicit refresh hook.
type SearchInvalidator interface {
	InvalidateAll()
}

// CatalogService orchestrates product and category use cases.
type CatalogService struct {
	store store.Store
	inv   SearchInvalidator
}

func NewCatalogService(s store.Store, inv SearchInvalidator) *CatalogService {
	return &CatalogService{store: s, inv: inv}
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	out, err := s.store.Products().Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	return s.store.Products().GetByID(ctx, productID)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.store.Products().List(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	out, err := s.store.Products().Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return out, nil
}

func (s *CatalogService) SetProductImage(ctx context.Context, productID, url string) error {
	return s.store.Products().SetImageURL(ctx, productID, url)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.store.Products().Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", model.ErrValidation)
	}
	return s.store.Categories().Create(ctx, c)
}

func (s *CatalogService) GetCategory(ctx context.Context, categoryID string) (*model.Category, error) {
	return s.store.Categories().GetByID(ctx, categoryID)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.store.Categories().List(ctx)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.store.Categories().Delete(ctx, categoryID); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	if s.inv != nil {
		s.inv.InvalidateAll()
	}
}

func validateProduct(p *model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", model.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", model.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", model.ErrValidation)
	}
	return nil
}
