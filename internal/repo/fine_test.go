package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
)

func fineFixture() domain.Fine {
	return domain.Fine{
		UserID: "user-1",
		TripID: uuid.New(),
		Reason: "wrong parking zone",
		Amount: 50,
	}
}

func TestFineRepo_Create(t *testing.T) {
	r := repo.NewFineRepo(newTestTx(t))
	ctx := context.Background()

	input := fineFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.UserID, got.UserID)
	assert.Equal(t, input.TripID, got.TripID)
	assert.Equal(t, input.Reason, got.Reason)
	assert.InDelta(t, 50, got.Amount, 1e-9)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestFineRepo_GetByID(t *testing.T) {
	r := repo.NewFineRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, fineFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Reason, got.Reason)
}

func TestFineRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewFineRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.GetByID(ctx, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFineRepo_List(t *testing.T) {
	r := repo.NewFineRepo(newTestTx(t))
	ctx := context.Background()

	f1 := fineFixture()
	f2 := fineFixture()
	f2.UserID = "user-2"

	_, err := r.Create(ctx, f1)
	require.NoError(t, err)
	_, err = r.Create(ctx, f2)
	require.NoError(t, err)

	t.Run("no filter returns all", func(t *testing.T) {
		got, total, err := r.List(ctx, "", domain.NewPageParams(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("filter by user", func(t *testing.T) {
		got, total, err := r.List(ctx, "user-2", domain.NewPageParams(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "user-2", got[0].UserID)
	})
}
