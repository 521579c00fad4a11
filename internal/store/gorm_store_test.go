package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kbhandari/portfolio-api/internal/database/testutil"
	"github.com/kbhandari/portfolio-api/internal/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	s, err := NewGormStore(testutil.MustOpenTestDB(t))
	require.NoError(t, err)
	return s
}

func samplePending(token string) *models.PendingMessage {
	return &models.PendingMessage{
		Name:    "Jo",
		Email:   "jo@x.com",
		Subject: "Hi!",
		Message: "1234567890",
		Token:   token,
	}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	msg := samplePending("tok-create")
	require.NoError(t, s.Create(context.Background(), msg))

	require.NotEmpty(t, msg.ID)
	require.False(t, msg.CreatedAt.IsZero())
}

func TestFindByTokenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := samplePending("tok-roundtrip")
	require.NoError(t, s.Create(ctx, msg))

	found, err := s.FindByToken(ctx, "tok-roundtrip")
	require.NoError(t, err)
	require.Equal(t, msg.ID, found.ID)
	require.Equal(t, "Jo", found.Name)
	require.Equal(t, "jo@x.com", found.Email)
	require.Equal(t, "Hi!", found.Subject)
	require.Equal(t, "1234567890", found.Message)

	affected, err := s.DeleteByID(ctx, msg.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	_, err = s.FindByToken(ctx, "tok-roundtrip")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByTokenAbsent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByToken(context.Background(), "never-issued")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByToken(context.Background(), "   ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByIDIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := samplePending("tok-idempotent")
	require.NoError(t, s.Create(ctx, msg))

	affected, err := s.DeleteByID(ctx, msg.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	affected, err = s.DeleteByID(ctx, msg.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

func TestResubmissionCreatesIndependentRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := samplePending("tok-first")
	second := samplePending("tok-second")
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	require.NotEqual(t, first.ID, second.ID)

	found, err := s.FindByToken(ctx, "tok-second")
	require.NoError(t, err)
	require.Equal(t, second.ID, found.ID)
}
