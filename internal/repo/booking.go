package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/carshare/backend/internal/domain"
)

// BookingFilter narrows List results. Zero values mean "no filter".
type BookingFilter struct {
	UserID string
	Status domain.BookingStatus
}

// BookingRepo defines the persistence operations for Bookings.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type BookingRepo interface {
	// Create inserts a new booking with status=created and returns the
	// persisted record (with DB-generated id and timestamps populated).
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByID retrieves a single booking by its UUID primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// Cancel sets status=cancelled unconditionally and returns the updated
	// record. Cancelling an already-cancelled booking is a no-op that still
	// succeeds. Returns domain.ErrNotFound for an unknown id.
	Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// Extend sets end_at=newEndAt and status=extended unconditionally and
	// returns the updated record. Returns domain.ErrNotFound for an unknown id.
	Extend(ctx context.Context, id uuid.UUID, newEndAt time.Time) (domain.Booking, error)

	// List returns one page of bookings matching the filter plus the total
	// match count before pagination. Ordered by created_at then id so
	// pagination stays deterministic under concurrent inserts.
	List(ctx context.Context, f BookingFilter, page domain.PageParams) ([]domain.Booking, int, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, user_id, car_id, zone_id, start_at, end_at, status, created_at, updated_at`

func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (user_id, car_id, zone_id, start_at, end_at, status)
		VALUES (@user_id, @car_id, @zone_id, @start_at, @end_at, @status)
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"user_id":  b.UserID,
		"car_id":   b.CarID,
		"zone_id":  b.ZoneID,
		"start_at": b.StartAt,
		"end_at":   b.EndAt,
		"status":   domain.BookingStatusCreated,
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{"id": id, "status": domain.BookingStatusCancelled}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Cancel: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) Extend(ctx context.Context, id uuid.UUID, newEndAt time.Time) (domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET end_at = @end_at, status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{"id": id, "end_at": newEndAt, "status": domain.BookingStatusExtended}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Extend: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) List(ctx context.Context, f BookingFilter, page domain.PageParams) ([]domain.Booking, int, error) {
	// Empty filter values match everything; the total is counted with the
	// same predicate so it reflects the full filtered set, not the page.
	const where = `
		WHERE (@user_id = '' OR user_id = @user_id)
		  AND (@status = '' OR status = @status)`

	args := pgx.NamedArgs{
		"user_id": f.UserID,
		"status":  string(f.Status),
		"offset":  page.Offset,
		"limit":   page.Limit,
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings`+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: count: %w", err)
	}

	const q = `SELECT ` + bookingColumns + ` FROM bookings` + where + `
		ORDER BY created_at, id
		OFFSET @offset LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.BookingRepo.List: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: rows: %w", err)
	}

	return bookings, total, nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b      domain.Booking
		id     pgtype.UUID
		status string
	)

	err := s.Scan(&id, &b.UserID, &b.CarID, &b.ZoneID, &b.StartAt, &b.EndAt,
		&status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.Status = domain.BookingStatus(status)
	return b, nil
}
