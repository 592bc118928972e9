package services

import (
	"testing"
	"time"

	"feedback_backend/internal/models"
	"feedback_backend/internal/services/dto"
	"feedback_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestRegisterVerifyLogin(t *testing.T) {
	reg, mail, db := newTestRegistry(t)
	ctx := testCtx()

	user, err := reg.Auth.Register(ctx, &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@test.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	// Delivery is asynchronous.
	require.Eventually(t, func() bool {
		return mail.LastFor("alice@test.com") != nil
	}, time.Second, 10*time.Millisecond)
	msg := mail.LastFor("alice@test.com")
	assert.Equal(t, "verification", msg.Kind)
	assert.NotEmpty(t, msg.Token)

	// Unverified accounts cannot log in even with correct credentials.
	_, err = reg.Auth.Login(ctx, &dto.LoginRequest{Email: "alice@test.com", Password: "password123"})
	requireCode(t, err, apperrors.CodeNotVerified)

	require.NoError(t, reg.Auth.VerifyEmail(ctx, msg.Token))

	resp, err := reg.Auth.Login(ctx, &dto.LoginRequest{Email: "alice@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// The verification token is consumed on first use.
	err = reg.Auth.VerifyEmail(ctx, msg.Token)
	requireCode(t, err, apperrors.CodeInvalidToken)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerificationToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := testCtx()

	req := &dto.RegisterRequest{Name: "Alice", Email: "alice@test.com", Password: "password123"}
	_, err := reg.Auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = reg.Auth.Register(ctx, req)
	requireCode(t, err, apperrors.CodeAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	reg, _, db := newTestRegistry(t)
	ctx := testCtx()

	tests := []struct {
		name string
		req  *dto.RegisterRequest
	}{
		{"short password", &dto.RegisterRequest{Name: "Alice", Email: "a@test.com", Password: "short"}},
		{"bad email", &dto.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "password123"}},
		{"missing name", &dto.RegisterRequest{Email: "a@test.com", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Auth.Register(ctx, tt.req)
			requireCode(t, err, apperrors.CodeValidationFailed)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "rejected registrations must not persist")
}

func TestLoginInvalidCredentials(t *testing.T) {
	reg, mail, _ := newTestRegistry(t)
	ctx := testCtx()

	_, err := reg.Auth.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@test.com", Password: "password123",
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return mail.LastFor("alice@test.com") != nil
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, reg.Auth.VerifyEmail(ctx, mail.LastFor("alice@test.com").Token))

	// Unknown email and wrong password map to the same error so the
	// response does not reveal which part was wrong.
	_, err = reg.Auth.Login(ctx, &dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	requireCode(t, err, apperrors.CodeInvalidCredentials)

	_, err = reg.Auth.Login(ctx, &dto.LoginRequest{Email: "alice@test.com", Password: "wrong-password"})
	requireCode(t, err, apperrors.CodeInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	reg, mail, db := newTestRegistry(t)
	ctx := testCtx()

	user, err := reg.Auth.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@test.com", Password: "password123",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_verified", true).Error)

	require.NoError(t, reg.Auth.RequestPasswordReset(ctx, "alice@test.com"))

	require.Eventually(t, func() bool {
		msg := mail.LastFor("alice@test.com")
		return msg != nil && msg.Kind == "password_reset"
	}, time.Second, 10*time.Millisecond)
	token := mail.LastFor("alice@test.com").Token

	err = reg.Auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "newpassword456"})
	require.NoError(t, err)

	_, err = reg.Auth.Login(ctx, &dto.LoginRequest{Email: "alice@test.com", Password: "password123"})
	requireCode(t, err, apperrors.CodeInvalidCredentials)

	resp, err := reg.Auth.Login(ctx, &dto.LoginRequest{Email: "alice@test.com", Password: "newpassword456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Reset tokens are single use.
	err = reg.Auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "anotherpass789"})
	requireCode(t, err, apperrors.CodeInvalidToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	reg, mail, db := newTestRegistry(t)
	ctx := testCtx()

	user, err := reg.Auth.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@test.com", Password: "password123",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_verified", true).Error)
	require.NoError(t, reg.Auth.RequestPasswordReset(ctx, "alice@test.com"))

	require.Eventually(t, func() bool {
		msg := mail.LastFor("alice@test.com")
		return msg != nil && msg.Kind == "password_reset"
	}, time.Second, 10*time.Millisecond)
	token := mail.LastFor("alice@test.com").Token

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("reset_token_exp", expired).Error)

	err = reg.Auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "newpassword456"})
	requireCode(t, err, apperrors.CodeTokenExpired)

	// The old password still works.
	resp, err := reg.Auth.Login(ctx, &dto.LoginRequest{Email: "alice@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	reg, mail, _ := newTestRegistry(t)

	// Silent success so the endpoint does not leak account existence.
	require.NoError(t, reg.Auth.RequestPasswordReset(testCtx(), "nobody@test.com"))

	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, mail.LastFor("nobody@test.com"))
}

func TestRequestPasswordResetStorageFailure(t *testing.T) {
	reg, _, db := newTestRegistry(t)

	// Only an unknown email is silent; a broken store must surface.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = reg.Auth.RequestPasswordReset(testCtx(), "alice@test.com")
	requireCode(t, err, apperrors.CodeInternalError)
}

func TestMe(t *testing.T) {
	reg, _, db := newTestRegistry(t)
	ctx := testCtx()

	user, id := createUser(t, db, models.UserRoleUser)

	got, err := reg.Auth.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = reg.Auth.Me(ctx, nil)
	requireCode(t, err, apperrors.CodeUnauthorized)
}
