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

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// The booking reference is logical, not a foreign key, so a random UUID works.
func tripFixture() domain.Trip {
	return domain.Trip{
		BookingID: uuid.New(),
		UserID:    "user-1",
		CarID:     "car-1",
	}
}

func settlementFixture() repo.TripSettlement {
	return repo.TripSettlement{
		DistanceKm:      10.5,
		DurationMinutes: 25,
		BaseAmount:      330,
		DiscountAmount:  33,
		FinalAmount:     297,
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.BookingID, got.BookingID)
	assert.Equal(t, input.UserID, got.UserID)
	assert.Equal(t, input.CarID, got.CarID)
	assert.Equal(t, domain.TripStatusInProgress, got.Status)
	assert.False(t, got.StartedAt.IsZero(), "StartedAt should be set by DB")
	assert.Nil(t, got.FinishedAt, "settlement fields stay nil while in progress")
	assert.Nil(t, got.DistanceKm)
	assert.Nil(t, got.FinalAmount)
}

func TestTripRepo_GetByID(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.BookingID, got.BookingID)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.GetByID(ctx, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Finish(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.Finish(ctx, created.ID, settlementFixture())

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusFinished, got.Status)
	require.NotNil(t, got.FinishedAt)
	require.NotNil(t, got.DistanceKm)
	assert.InDelta(t, 10.5, *got.DistanceKm, 1e-9)
	require.NotNil(t, got.DurationMinutes)
	assert.Equal(t, 25, *got.DurationMinutes)
	require.NotNil(t, got.BaseAmount)
	assert.InDelta(t, 330, *got.BaseAmount, 1e-9)
	require.NotNil(t, got.DiscountAmount)
	assert.InDelta(t, 33, *got.DiscountAmount, 1e-9)
	require.NotNil(t, got.FinalAmount)
	assert.InDelta(t, 297, *got.FinalAmount, 1e-9)
}

func TestTripRepo_Finish_AlreadyFinished(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = r.Finish(ctx, created.ID, settlementFixture())
	require.NoError(t, err)

	// The conditional update matches zero rows the second time.
	_, err = r.Finish(ctx, created.ID, settlementFixture())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Finish_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Finish(ctx, uuid.New(), settlementFixture())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	t1 := tripFixture()
	t2 := tripFixture()
	t2.UserID = "user-2"

	_, err := r.Create(ctx, t1)
	require.NoError(t, err)
	created2, err := r.Create(ctx, t2)
	require.NoError(t, err)
	_, err = r.Finish(ctx, created2.ID, settlementFixture())
	require.NoError(t, err)

	t.Run("no filter returns all", func(t *testing.T) {
		got, total, err := r.List(ctx, repo.TripFilter{}, domain.NewPageParams(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("filter by user", func(t *testing.T) {
		got, total, err := r.List(ctx, repo.TripFilter{UserID: "user-2"}, domain.NewPageParams(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "user-2", got[0].UserID)
	})

	t.Run("filter by status", func(t *testing.T) {
		got, total, err := r.List(ctx, repo.TripFilter{Status: domain.TripStatusFinished}, domain.NewPageParams(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, domain.TripStatusFinished, got[0].Status)
	})
}
