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

type UserService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, caller *auth.Identity, limit, offset int) ([]models.User, int64, error)
	Update(ctx context.Context, caller *auth.Identity, userID string, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, caller *auth.Identity, userID string) error
}

type UserServiceImpl struct {
	userRepo     repositories.UserRepository
	feedbackRepo repositories.FeedbackRepository
	aggregator   RatingAggregator
	audit        AuditRecorder
	validate     *validator.Validator
}

func NewUserService(
	userRepo repositories.UserRepository,
	feedbackRepo repositories.FeedbackRepository,
	aggregator RatingAggregator,
	audit AuditRecorder,
	validate *validator.Validator,
) UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		aggregator:   aggregator,
		audit:        audit,
		validate:     validate,
	}
}

func (s *UserServiceImpl) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) List(ctx context.Context, caller *auth.Identity, limit, offset int) ([]models.User, int64, error) {
	if err := auth.Require(caller, auth.ActionListUsers, ""); err != nil {
		return nil, 0, err
	}

	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, caller *auth.Identity, userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := auth.Require(caller, auth.ActionUpdateUser, ""); err != nil {
		return nil, err
	}

	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = models.UserRole(*req.Role)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.audit.Record(ctx, &caller.UserID, AuditUserUpdated,
		fmt.Sprintf("user %s (%s) updated", user.Email, user.ID))

	return user, nil
}

// Delete removes the user and cascades to their feedback. Each product the
// deleted feedback referenced gets its cached average recomputed.
func (s *UserServiceImpl) Delete(ctx context.Context, caller *auth.Identity, userID string) error {
	if err := auth.Require(caller, auth.ActionDeleteUser, ""); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound()
		}
		return apperrors.InternalError(err)
	}

	feedbacks, err := s.feedbackRepo.FindByUser(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	touched := make(map[string]struct{}, len(feedbacks))
	for _, fb := range feedbacks {
		touched[fb.ProductID] = struct{}{}
	}

	removed, err := s.feedbackRepo.DeleteByUser(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}

	for productID := range touched {
		if err := s.aggregator.Recompute(ctx, productID); err != nil {
			logger.FromContext(ctx).Error("rating recompute failed",
				"product_id", productID,
				"error", err.Error(),
			)
		}
	}

	s.audit.Record(ctx, &caller.UserID, AuditUserDeleted,
		fmt.Sprintf("user %s (%s) deleted with %d feedback entries", user.Email, user.ID, removed))

	return nil
}
