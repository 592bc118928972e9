package services

import (
	"context"
	"time"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/email"
	"feedback_backend/internal/logger"
	"feedback_backend/internal/models"
	"feedback_backend/internal/repositories"
	"feedback_backend/internal/services/dto"
	"feedback_backend/internal/validator"
	"feedback_backend/pkg/apperrors"
)

const resetTokenTTL = 1 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RequestPasswordReset(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Me(ctx context.Context, id *auth.Identity) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenManager
	emailProvider email.Provider
	validate      *validator.Validator
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
	validate *validator.Validator,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		emailProvider: emailProvider,
		validate:      validate,
	}
}

// Register creates an unverified user and fires a verification email.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verificationToken := auth.GenerateRandomToken()

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Role:              models.UserRoleUser,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists()
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationEmail(ctx, user.Email, verificationToken)

	return user, nil
}

// VerifyEmail flips the user to verified and consumes the one-time token.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken()
	}

	user.IsVerified = true
	user.VerificationToken = ""

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Login issues an access token. Unverified users are rejected even with
// correct credentials.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials()
	}

	if !user.IsVerified {
		return nil, apperrors.ErrNotVerified()
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// RequestPasswordReset issues a time-boxed reset token. An unknown email
// succeeds silently so the endpoint does not leak account existence.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	resetToken := auth.GenerateRandomToken()
	resetTokenExp := time.Now().Add(resetTokenTTL)

	user.ResetToken = resetToken
	user.ResetTokenExp = &resetTokenExp

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendPasswordResetEmail(ctx, user.Email, resetToken)

	return nil
}

// ResetPassword consumes a valid, unexpired reset token. The token is
// cleared on success so a second use fails.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByResetToken(req.Token)
	if err != nil {
		return apperrors.ErrInvalidToken()
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrTokenExpired()
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = ""
	user.ResetTokenExp = nil

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, id *auth.Identity) (*models.User, error) {
	if err := auth.Require(id, auth.ActionViewSelf, ""); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// sendVerificationEmail is fire-and-forget: delivery failure must not block
// or fail the registration that triggered it.
func (s *AuthServiceImpl) sendVerificationEmail(ctx context.Context, to, token string) {
	if s.emailProvider == nil {
		return
	}
	log := logger.FromContext(ctx)
	go func() {
		if err := s.emailProvider.SendVerification(to, token); err != nil {
			log.Error("failed to send verification email", "error", err.Error())
		}
	}()
}

func (s *AuthServiceImpl) sendPasswordResetEmail(ctx context.Context, to, token string) {
	if s.emailProvider == nil {
		return
	}
	log := logger.FromContext(ctx)
	go func() {
		if err := s.emailProvider.SendPasswordReset(to, token); err != nil {
			log.Error("failed to send password reset email", "error", err.Error())
		}
	}()
}
