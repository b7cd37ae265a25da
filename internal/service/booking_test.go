package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
	"github.com/pkordes/carshare/backend/internal/service"
)

// mockBookingRepo is a hand-written test double for repo.BookingRepo.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.
type mockBookingRepo struct {
	create  func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	cancel  func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	extend  func(ctx context.Context, id uuid.UUID, newEndAt time.Time) (domain.Booking, error)
	list    func(ctx context.Context, f repo.BookingFilter, page domain.PageParams) ([]domain.Booking, int, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.cancel(ctx, id)
}
func (m *mockBookingRepo) Extend(ctx context.Context, id uuid.UUID, newEndAt time.Time) (domain.Booking, error) {
	return m.extend(ctx, id, newEndAt)
}
func (m *mockBookingRepo) List(ctx context.Context, f repo.BookingFilter, page domain.PageParams) ([]domain.Booking, int, error) {
	return m.list(ctx, f, page)
}

// compile-time check: mockBookingRepo must satisfy repo.BookingRepo.
var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validBooking() domain.Booking {
	return domain.Booking{
		UserID:  "user-1",
		CarID:   "car-1",
		ZoneID:  "zone-1",
		StartAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// echoBookingRepo echoes whatever it receives back — useful for tests that
// only care about validation logic, not what the DB returns.
func echoBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		create: func(_ context.Context, b domain.Booking) (domain.Booking, error) { return b, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestBookingService_Create_Valid(t *testing.T) {
	svc := service.NewBookingService(echoBookingRepo())

	got, err := svc.Create(context.Background(), validBooking())

	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestBookingService_Create_MissingFields(t *testing.T) {
	svc := service.NewBookingService(echoBookingRepo())

	for _, tc := range []struct {
		name   string
		mutate func(*domain.Booking)
	}{
		{"missing user_id", func(b *domain.Booking) { b.UserID = "  " }},
		{"missing car_id", func(b *domain.Booking) { b.CarID = "" }},
		{"missing zone_id", func(b *domain.Booking) { b.ZoneID = "" }},
		{"zero start_at", func(b *domain.Booking) { b.StartAt = time.Time{} }},
		{"zero end_at", func(b *domain.Booking) { b.EndAt = time.Time{} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)

			_, err := svc.Create(context.Background(), b)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestBookingService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewBookingService(echoBookingRepo())

	b := validBooking()
	b.EndAt = b.StartAt.Add(-time.Hour)

	_, err := svc.Create(context.Background(), b)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Create_EndEqualsStart(t *testing.T) {
	svc := service.NewBookingService(echoBookingRepo())

	b := validBooking()
	b.EndAt = b.StartAt // zero-length window is allowed

	_, err := svc.Create(context.Background(), b)

	require.NoError(t, err)
}

// ---- Cancel tests ----------------------------------------------------------

func TestBookingService_Cancel(t *testing.T) {
	id := uuid.New()
	svc := service.NewBookingService(&mockBookingRepo{
		cancel: func(_ context.Context, gotID uuid.UUID) (domain.Booking, error) {
			assert.Equal(t, id, gotID)
			b := validBooking()
			b.ID = gotID
			b.Status = domain.BookingStatusCancelled
			return b, nil
		},
	})

	got, err := svc.Cancel(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)
}

func TestBookingService_Cancel_NotFound(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		cancel: func(_ context.Context, _ uuid.UUID) (domain.Booking, error) {
			return domain.Booking{}, domain.ErrNotFound
		},
	})

	_, err := svc.Cancel(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Extend tests ----------------------------------------------------------

func TestBookingService_Extend(t *testing.T) {
	current := validBooking()
	newEnd := current.EndAt.Add(2 * time.Hour)

	svc := service.NewBookingService(&mockBookingRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Booking, error) {
			return current, nil
		},
		extend: func(_ context.Context, _ uuid.UUID, gotEnd time.Time) (domain.Booking, error) {
			assert.True(t, gotEnd.Equal(newEnd))
			b := current
			b.EndAt = gotEnd
			b.Status = domain.BookingStatusExtended
			return b, nil
		},
	})

	got, err := svc.Extend(context.Background(), uuid.New(), newEnd)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusExtended, got.Status)
	assert.True(t, got.EndAt.Equal(newEnd))
}

func TestBookingService_Extend_ZeroEnd(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{})

	_, err := svc.Extend(context.Background(), uuid.New(), time.Time{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Extend_BeforeStart(t *testing.T) {
	current := validBooking()

	svc := service.NewBookingService(&mockBookingRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Booking, error) {
			return current, nil
		},
	})

	// Shrinking is allowed, but not past the start.
	_, err := svc.Extend(context.Background(), uuid.New(), current.StartAt.Add(-time.Minute))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Extend_NotFound(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Booking, error) {
			return domain.Booking{}, domain.ErrNotFound
		},
	})

	_, err := svc.Extend(context.Background(), uuid.New(), time.Now())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List tests ------------------------------------------------------------

func TestBookingService_List_EmptyResultIsNotNil(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		list: func(_ context.Context, _ repo.BookingFilter, _ domain.PageParams) ([]domain.Booking, int, error) {
			return nil, 0, nil
		},
	})

	got, total, err := svc.List(context.Background(), repo.BookingFilter{}, domain.NewPageParams(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, got, "empty list should serialize as [], not null")
}

func TestBookingService_List_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewBookingService(&mockBookingRepo{
		list: func(_ context.Context, _ repo.BookingFilter, _ domain.PageParams) ([]domain.Booking, int, error) {
			return nil, 0, boom
		},
	})

	_, _, err := svc.List(context.Background(), repo.BookingFilter{}, domain.NewPageParams(nil, nil))

	assert.ErrorIs(t, err, boom)
}
