package services

import (
	"context"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/logger"
	"feedback_backend/internal/models"
	"feedback_backend/internal/repositories"
	"feedback_backend/pkg/apperrors"
)

// Audit action labels.
const (
	AuditProductAdded    = "product.added"
	AuditProductUpdated  = "product.updated"
	AuditProductDeleted  = "product.deleted"
	AuditFeedbackAdded   = "feedback.added"
	AuditFeedbackUpdated = "feedback.updated"
	AuditFeedbackDeleted = "feedback.deleted"
	AuditUserUpdated     = "user.updated"
	AuditUserDeleted     = "user.deleted"
	AuditProductPurged   = "cleanup.product_purged"
)

// AuditRecorder appends entries after state-changing mutations. Writes are
// best-effort: a failed append is logged for operators and never propagated,
// so the triggering mutation's result is unaffected.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *string, action, detail string)
	List(ctx context.Context, id *auth.Identity, limit, offset int) ([]models.AuditLog, int64, error)
}

type auditRecorder struct {
	repo repositories.AuditLogRepository
}

func NewAuditRecorder(repo repositories.AuditLogRepository) AuditRecorder {
	return &auditRecorder{repo: repo}
}

func (r *auditRecorder) Record(ctx context.Context, actorID *string, action, detail string) {
	entry := &models.AuditLog{
		ActorID: actorID,
		Action:  action,
		Detail:  detail,
	}
	if err := r.repo.Create(entry); err != nil {
		logger.FromContext(ctx).Error("audit write failed",
			"action", action,
			"error", err.Error(),
		)
	}
}

func (r *auditRecorder) List(ctx context.Context, id *auth.Identity, limit, offset int) ([]models.AuditLog, int64, error) {
	if err := auth.Require(id, auth.ActionListAuditLogs, ""); err != nil {
		return nil, 0, err
	}

	entries, err := r.repo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := r.repo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return entries, total, nil
}
