package services

import (
	"testing"

	"feedback_backend/internal/models"
	"feedback_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogListAdminOnly(t *testing.T) {
	reg, _, db := newTestRegistry(t)
	ctx := testCtx()

	user, userID := createUser(t, db, models.UserRoleUser)
	_, admin := createUser(t, db, models.UserRoleAdmin)

	reg.Audit.Record(ctx, &user.ID, AuditProductAdded, "product Widget")
	reg.Audit.Record(ctx, nil, AuditProductPurged, "product Stale")

	_, _, err := reg.Audit.List(ctx, userID, 10, 0)
	requireCode(t, err, apperrors.CodeForbidden)

	_, _, err = reg.Audit.List(ctx, nil, 10, 0)
	requireCode(t, err, apperrors.CodeUnauthorized)

	entries, total, err := reg.Audit.List(ctx, admin, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, AuditProductPurged, entries[0].Action)
	assert.Nil(t, entries[0].ActorID)
	require.NotNil(t, entries[1].ActorID)
	assert.Equal(t, user.ID, *entries[1].ActorID)
}
