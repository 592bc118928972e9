package services

import (
	"feedback_backend/internal/auth"
	"feedback_backend/internal/email"
	"feedback_backend/internal/repositories"
	"feedback_backend/internal/validator"

	"gorm.io/gorm"
)

// Registry bundles the wired service layer for the transport and workers.
type Registry struct {
	Auth     AuthService
	Users    UserService
	Products ProductService
	Feedback FeedbackService
	Audit    AuditRecorder
	Cleanup  CleanupService
}

// NewRegistry wires repositories and services on top of the given database
// handle. Collaborators (token manager, email provider) are injected by the
// process entry point.
func NewRegistry(db *gorm.DB, tokens *auth.TokenManager, emailProvider email.Provider) *Registry {
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	aggregator := NewRatingAggregator(feedbackRepo, productRepo)
	audit := NewAuditRecorder(auditRepo)

	return &Registry{
		Auth:     NewAuthService(userRepo, tokens, emailProvider, validate),
		Users:    NewUserService(userRepo, feedbackRepo, aggregator, audit, validate),
		Products: NewProductService(productRepo, feedbackRepo, audit, validate),
		Feedback: NewFeedbackService(feedbackRepo, productRepo, aggregator, audit, validate),
		Audit:    audit,
		Cleanup:  NewCleanupService(productRepo, feedbackRepo, audit),
	}
}
