package services

import (
	"testing"

	"feedback_backend/internal/models"
	"feedback_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSweep(t *testing.T) {
	reg, _, db := newTestRegistry(t)
	ctx := testCtx()

	user, _ := createUser(t, db, models.UserRoleUser)

	// Four unanimous bottom ratings: purged.
	doomed := createProduct(t, db, "Doomed")
	for _, r := range []int{1, 1, 1, 1} {
		createFeedback(t, db, user.ID, doomed.ID, r)
	}

	// One rating above the floor saves the product.
	mixed := createProduct(t, db, "Mixed")
	for _, r := range []int{1, 1, 1, 2} {
		createFeedback(t, db, user.ID, mixed.ID, r)
	}

	// Exactly at the count threshold: not enough signal to purge.
	sparse := createProduct(t, db, "Sparse")
	for _, r := range []int{1, 1, 1} {
		createFeedback(t, db, user.ID, sparse.ID, r)
	}

	// No feedback at all is never grounds for removal.
	empty := createProduct(t, db, "Empty")

	purged, err := reg.Cleanup.RunSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = reg.Products.Get(ctx, doomed.ID)
	requireCode(t, err, apperrors.CodeNotFound)
	assert.Zero(t, countFeedback(t, db, doomed.ID))

	for _, id := range []string{mixed.ID, sparse.ID, empty.ID} {
		_, err := reg.Products.Get(ctx, id)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 4, countFeedback(t, db, mixed.ID))
	assert.EqualValues(t, 3, countFeedback(t, db, sparse.ID))

	// Purges are recorded without an actor.
	entries := auditEntries(t, db, AuditProductPurged)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ActorID)
}

func TestRunSweepIdempotent(t *testing.T) {
	reg, _, db := newTestRegistry(t)
	ctx := testCtx()

	user, _ := createUser(t, db, models.UserRoleUser)
	doomed := createProduct(t, db, "Doomed")
	for i := 0; i < 5; i++ {
		createFeedback(t, db, user.ID, doomed.ID, 1)
	}

	purged, err := reg.Cleanup.RunSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	purged, err = reg.Cleanup.RunSweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestShouldPurge(t *testing.T) {
	mk := func(ratings ...int) []models.Feedback {
		out := make([]models.Feedback, 0, len(ratings))
		for _, r := range ratings {
			out = append(out, models.Feedback{Rating: r})
		}
		return out
	}

	tests := []struct {
		name    string
		ratings []models.Feedback
		want    bool
	}{
		{"no feedback", mk(), false},
		{"at count threshold", mk(1, 1, 1), false},
		{"above threshold all bottom", mk(1, 1, 1, 1), true},
		{"above threshold one decent", mk(1, 1, 1, 2), false},
		{"many bottom ratings", mk(1, 1, 1, 1, 1, 1), true},
		{"high ratings", mk(5, 5, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldPurge(tt.ratings))
		})
	}
}
