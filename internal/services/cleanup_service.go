package services

import (
	"context"
	"fmt"

	"feedback_backend/internal/logger"
	"feedback_backend/internal/models"
	"feedback_backend/internal/repositories"
)

// Purge policy: a product goes when it has accumulated more than
// sweepMinFeedbackCount feedback entries and every one of them rates at or
// below sweepMaxRating.
const (
	sweepMinFeedbackCount = 3
	sweepMaxRating        = 1
)

// CleanupService is the full-scan sweep deleting products whose feedback is
// uniformly low. The scheduler invokes RunSweep with no arguments; sweeps
// are expected not to overlap, and deletes are idempotent so a double run
// is harmless.
type CleanupService interface {
	RunSweep(ctx context.Context) (int, error)
}

type CleanupServiceImpl struct {
	productRepo  repositories.ProductRepository
	feedbackRepo repositories.FeedbackRepository
	audit        AuditRecorder
}

func NewCleanupService(
	productRepo repositories.ProductRepository,
	feedbackRepo repositories.FeedbackRepository,
	audit AuditRecorder,
) CleanupService {
	return &CleanupServiceImpl{
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
		audit:        audit,
	}
}

// RunSweep scans every product and applies the purge policy. Returns the
// number of products removed. Per-product failures are logged and skipped
// so one bad row cannot abort the whole sweep.
func (s *CleanupServiceImpl) RunSweep(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	products, err := s.productRepo.FindAll(0, 0)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, product := range products {
		feedbacks, err := s.feedbackRepo.FindByProduct(product.ID)
		if err != nil {
			log.Error("sweep: failed to load feedback", "product_id", product.ID, "error", err.Error())
			continue
		}

		if !shouldPurge(feedbacks) {
			continue
		}

		removed, err := s.feedbackRepo.DeleteByProduct(product.ID)
		if err != nil {
			log.Error("sweep: failed to delete feedback", "product_id", product.ID, "error", err.Error())
			continue
		}
		if err := s.productRepo.Delete(product.ID); err != nil {
			log.Error("sweep: failed to delete product", "product_id", product.ID, "error", err.Error())
			continue
		}

		// nil actor: the sweep acts on behalf of the system
		s.audit.Record(ctx, nil, AuditProductPurged,
			fmt.Sprintf("product %q (%s) purged with %d uniformly low feedback entries", product.Name, product.ID, removed))

		purged++
	}

	return purged, nil
}

func shouldPurge(feedbacks []models.Feedback) bool {
	if len(feedbacks) <= sweepMinFeedbackCount {
		return false
	}
	for _, fb := range feedbacks {
		if fb.Rating > sweepMaxRating {
			return false
		}
	}
	return true
}
