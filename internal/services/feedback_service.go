package services

import (
	"context"
	"fmt"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/logger"
	"feedback_backend/internal/models"
	"feedback_backend/internal/repositories"
	"feedback_backend/internal/services/dto"
	"feedback_backend/internal/validator"
	"feedback_backend/pkg/apperrors"
)

type FeedbackService interface {
	Get(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context, limit, offset int) ([]models.Feedback, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]models.Feedback, error)
	Add(ctx context.Context, caller *auth.Identity, req *dto.AddFeedbackRequest) (*models.Feedback, error)
	Update(ctx context.Context, caller *auth.Identity, feedbackID string, req *dto.UpdateFeedbackRequest) (*models.Feedback, error)
	Delete(ctx context.Context, caller *auth.Identity, feedbackID string) error
}

type FeedbackServiceImpl struct {
	feedbackRepo repositories.FeedbackRepository
	productRepo  repositories.ProductRepository
	aggregator   RatingAggregator
	audit        AuditRecorder
	validate     *validator.Validator
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	productRepo repositories.ProductRepository,
	aggregator RatingAggregator,
	audit AuditRecorder,
	validate *validator.Validator,
) FeedbackService {
	return &FeedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		productRepo:  productRepo,
		aggregator:   aggregator,
		audit:        audit,
		validate:     validate,
	}
}

func (s *FeedbackServiceImpl) Get(ctx context.Context, id string) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFeedbackNotFound) {
			return nil, apperrors.ErrFeedbackNotFound()
		}
		return nil, apperrors.InternalError(err)
	}
	return feedback, nil
}

func (s *FeedbackServiceImpl) List(ctx context.Context, limit, offset int) ([]models.Feedback, error) {
	feedbacks, err := s.feedbackRepo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feedbacks, nil
}

func (s *FeedbackServiceImpl) ListByProduct(ctx context.Context, productID string) ([]models.Feedback, error) {
	feedbacks, err := s.feedbackRepo.FindByProduct(productID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feedbacks, nil
}

func (s *FeedbackServiceImpl) ListByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	feedbacks, err := s.feedbackRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feedbacks, nil
}

// Add creates a feedback row and synchronously recomputes the product's
// cached average. Feedback submission is a user-only action.
func (s *FeedbackServiceImpl) Add(ctx context.Context, caller *auth.Identity, req *dto.AddFeedbackRequest) (*models.Feedback, error) {
	if err := auth.Require(caller, auth.ActionAddFeedback, ""); err != nil {
		return nil, err
	}

	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrProductNotFound()
		}
		return nil, apperrors.InternalError(err)
	}

	feedback := &models.Feedback{
		UserID:    caller.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recompute(ctx, req.ProductID)

	s.audit.Record(ctx, &caller.UserID, AuditFeedbackAdded,
		fmt.Sprintf("feedback %s (rating %d) added for product %s", feedback.ID, feedback.Rating, feedback.ProductID))

	return feedback, nil
}

func (s *FeedbackServiceImpl) Update(ctx context.Context, caller *auth.Identity, feedbackID string, req *dto.UpdateFeedbackRequest) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByID(feedbackID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFeedbackNotFound) {
			return nil, apperrors.ErrFeedbackNotFound()
		}
		return nil, apperrors.InternalError(err)
	}

	if err := auth.Require(caller, auth.ActionUpdateFeedback, feedback.UserID); err != nil {
		return nil, err
	}

	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Rating != nil {
		feedback.Rating = *req.Rating
	}
	if req.Comment != nil {
		feedback.Comment = *req.Comment
	}

	if err := s.feedbackRepo.Update(feedback); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recompute(ctx, feedback.ProductID)

	s.audit.Record(ctx, &caller.UserID, AuditFeedbackUpdated,
		fmt.Sprintf("feedback %s updated (rating %d)", feedback.ID, feedback.Rating))

	return feedback, nil
}

func (s *FeedbackServiceImpl) Delete(ctx context.Context, caller *auth.Identity, feedbackID string) error {
	feedback, err := s.feedbackRepo.FindByID(feedbackID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFeedbackNotFound) {
			return apperrors.ErrFeedbackNotFound()
		}
		return apperrors.InternalError(err)
	}

	if err := auth.Require(caller, auth.ActionDeleteFeedback, feedback.UserID); err != nil {
		return err
	}

	if err := s.feedbackRepo.Delete(feedbackID); err != nil {
		return apperrors.InternalError(err)
	}

	s.recompute(ctx, feedback.ProductID)

	s.audit.Record(ctx, &caller.UserID, AuditFeedbackDeleted,
		fmt.Sprintf("feedback %s deleted from product %s", feedback.ID, feedback.ProductID))

	return nil
}

// recompute refreshes the product's cached average. A failure leaves the
// cache stale; the write that triggered it already succeeded, so the error
// is only logged.
func (s *FeedbackServiceImpl) recompute(ctx context.Context, productID string) {
	if err := s.aggregator.Recompute(ctx, productID); err != nil {
		logger.FromContext(ctx).Error("rating recompute failed",
			"product_id", productID,
			"error", err.Error(),
		)
	}
}
