package services

import (
	"context"
	"fmt"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// WishlistService manages per-customer saved products. Adds are idempotent at
// the storage layer, so repeating an add is not an error.
type WishlistService struct {
	store store.Store
}

func NewWishlistService(s store.Store) *WishlistService {
	return &WishlistService{store: s}
}

func (s *WishlistService) Add(ctx context.Context, customerID, productID string) error {
	if customerID == "" || productID == "" {
		return fmt.Errorf("%w: customerId and productId are required", model.ErrValidation)
	}
	if _, err := s.store.Products().GetByID(ctx, productID); err != nil {
		return err
	}
	return s.store.Wishlists().Add(ctx, &model.WishlistItem{
		CustomerID: customerID,
		ProductID:  productID,
	})
}

func (s *WishlistService) Remove(ctx context.Context, customerID, productID string) error {
	return s.store.Wishlists().Remove(ctx, customerID, productID)
}

func (s *WishlistService) List(ctx context.Context, customerID string) ([]*model.WishlistItem, error) {
	return s.store.Wishlists().List(ctx, customerID)
}
