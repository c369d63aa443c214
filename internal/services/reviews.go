package services

import (
	"context"
	"fmt"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// ReviewService handles customer ratings on products.
type ReviewService struct {
	store store.Store
}

func NewReviewService(s store.Store) *ReviewService {
	return &ReviewService{store: s}
}

func (s *ReviewService) CreateReview(ctx context.Context, r *model.Review) (*model.Review, error) {
	if r.ProductID == "" {
		return nil, fmt.Errorf("%w: productId is required", model.ErrValidation)
	}
	if r.CustomerID == "" {
		return nil, fmt.Errorf("%w: customerId is required", model.ErrValidation)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", model.ErrValidation)
	}
	// Reject reviews against products that do not exist.
	if _, err := s.store.Products().GetByID(ctx, r.ProductID); err != nil {
		return nil, err
	}
	return s.store.Reviews().Create(ctx, r)
}

func (s *ReviewService) ListReviews(ctx context.Context, productID string) ([]*model.Review, error) {
	return s.store.Reviews().ListByProduct(ctx, productID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	return s.store.Reviews().Delete(ctx, reviewID)
}
