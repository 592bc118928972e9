package auth

import (
	"testing"

	"feedback_backend/internal/models"
	"feedback_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	user := &Identity{UserID: "u1", Role: models.UserRoleUser}
	admin := &Identity{UserID: "a1", Role: models.UserRoleAdmin}

	tests := []struct {
		name     string
		pred     Predicate
		id       *Identity
		ownerID  string
		wantCode apperrors.ErrorCode
	}{
		{"public anonymous", Public, nil, "", ""},
		{"public user", Public, user, "", ""},

		{"authenticated anonymous", Authenticated, nil, "", apperrors.CodeUnauthorized},
		{"authenticated user", Authenticated, user, "", ""},
		{"authenticated admin", Authenticated, admin, "", ""},

		{"non-admin anonymous", NonAdmin, nil, "", apperrors.CodeUnauthorized},
		{"non-admin user", NonAdmin, user, "", ""},
		{"non-admin admin", NonAdmin, admin, "", apperrors.CodeForbidden},

		{"admin-only anonymous", AdminOnly, nil, "", apperrors.CodeUnauthorized},
		{"admin-only user", AdminOnly, user, "", apperrors.CodeForbidden},
		{"admin-only admin", AdminOnly, admin, "", ""},

		{"owner-or-admin anonymous", OwnerOrAdmin, nil, "u1", apperrors.CodeUnauthorized},
		{"owner-or-admin owner", OwnerOrAdmin, user, "u1", ""},
		{"owner-or-admin stranger", OwnerOrAdmin, user, "u2", apperrors.CodeForbidden},
		{"owner-or-admin admin", OwnerOrAdmin, admin, "u1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.pred, tt.id, tt.ownerID)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestRequirePolicy(t *testing.T) {
	user := &Identity{UserID: "u1", Role: models.UserRoleUser}
	admin := &Identity{UserID: "a1", Role: models.UserRoleAdmin}

	// Product and user management is admin territory.
	for _, action := range []Action{
		ActionAddProduct, ActionUpdateProduct, ActionDeleteProduct,
		ActionListUsers, ActionUpdateUser, ActionDeleteUser,
		ActionListAuditLogs,
	} {
		assert.Error(t, Require(user, action, ""), string(action))
		assert.NoError(t, Require(admin, action, ""), string(action))
	}

	// Feedback submission is the one action admins are locked out of.
	assert.NoError(t, Require(user, ActionAddFeedback, ""))
	assert.Error(t, Require(admin, ActionAddFeedback, ""))

	// Editing feedback follows ownership, with an admin override.
	assert.NoError(t, Require(user, ActionUpdateFeedback, "u1"))
	assert.Error(t, Require(user, ActionDeleteFeedback, "u2"))
	assert.NoError(t, Require(admin, ActionDeleteFeedback, "u2"))

	assert.Error(t, Require(nil, ActionViewSelf, ""))
	assert.NoError(t, Require(user, ActionViewSelf, ""))
}

func TestRequireUnknownAction(t *testing.T) {
	admin := &Identity{UserID: "a1", Role: models.UserRoleAdmin}
	assert.Error(t, Require(admin, Action("nope"), ""))
}
