package services

import (
	"context"

	"feedback_backend/internal/repositories"
)

// RatingAggregator maintains the denormalized average rating cached on
// products. It is the only writer of that field. Recomputation runs
// synchronously after every feedback write, but as a separate step: a
// failed recompute leaves a stale cache, which is accepted drift rather
// than cause for rollback.
type RatingAggregator interface {
	Recompute(ctx context.Context, productID string) error
}

type ratingAggregator struct {
	feedbackRepo repositories.FeedbackRepository
	productRepo  repositories.ProductRepository
}

func NewRatingAggregator(
	feedbackRepo repositories.FeedbackRepository,
	productRepo repositories.ProductRepository,
) RatingAggregator {
	return &ratingAggregator{
		feedbackRepo: feedbackRepo,
		productRepo:  productRepo,
	}
}

func (a *ratingAggregator) Recompute(ctx context.Context, productID string) error {
	avg, err := a.feedbackRepo.CalculateAverageRating(productID)
	if err != nil {
		return err
	}
	return a.productRepo.UpdateAverageRating(productID, avg)
}
