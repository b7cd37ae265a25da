package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/carshare/backend/internal/domain"
)

// TripFilter narrows List results. Zero values mean "no filter".
type TripFilter struct {
	UserID string
	Status domain.TripStatus
}

// TripSettlement carries the telemetry and rounded amounts written when a
// trip finishes. Built by the service layer; the repo only persists it.
type TripSettlement struct {
	DistanceKm      float64
	DurationMinutes int
	BaseAmount      float64
	DiscountAmount  float64
	FinalAmount     float64
}

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new in_progress trip and returns the persisted record
	// (with DB-generated id and started_at populated).
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Finish writes the settlement and flips status to finished, but only if
	// the trip is still in_progress — the transition is one-way and one-time,
	// and the conditional update keeps concurrent finishes from both
	// succeeding. Returns domain.ErrNotFound when no in_progress trip with
	// that ID exists (unknown id or already finished; the service
	// distinguishes the two).
	Finish(ctx context.Context, id uuid.UUID, s TripSettlement) (domain.Trip, error)

	// List returns one page of trips matching the filter plus the total
	// match count before pagination, ordered by created_at then id.
	List(ctx context.Context, f TripFilter, page domain.PageParams) ([]domain.Trip, int, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, booking_id, user_id, car_id, started_at, finished_at,
		distance_km, duration_minutes, base_amount, discount_amount, final_amount,
		status, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (booking_id, user_id, car_id, status)
		VALUES (@booking_id, @user_id, @car_id, @status)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"booking_id": t.BookingID,
		"user_id":    t.UserID,
		"car_id":     t.CarID,
		"status":     domain.TripStatusInProgress,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Finish(ctx context.Context, id uuid.UUID, s TripSettlement) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET finished_at      = now(),
		    distance_km      = @distance_km,
		    duration_minutes = @duration_minutes,
		    base_amount      = @base_amount,
		    discount_amount  = @discount_amount,
		    final_amount     = @final_amount,
		    status           = @finished,
		    updated_at       = now()
		WHERE id = @id AND status = @in_progress
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":               id,
		"distance_km":      s.DistanceKm,
		"duration_minutes": s.DurationMinutes,
		"base_amount":      s.BaseAmount,
		"discount_amount":  s.DiscountAmount,
		"final_amount":     s.FinalAmount,
		"finished":         domain.TripStatusFinished,
		"in_progress":      domain.TripStatusInProgress,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Finish: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context, f TripFilter, page domain.PageParams) ([]domain.Trip, int, error) {
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
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}

	const q = `SELECT ` + tripColumns + ` FROM trips` + where + `
		ORDER BY created_at, id
		OFFSET @offset LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, total, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID conversions and the nullable settlement columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		bookingID  pgtype.UUID
		finishedAt pgtype.Timestamptz
		distance   pgtype.Float8
		duration   pgtype.Int4
		base       pgtype.Float8
		discount   pgtype.Float8
		final      pgtype.Float8
		status     string
	)

	err := s.Scan(&id, &bookingID, &t.UserID, &t.CarID, &t.StartedAt, &finishedAt,
		&distance, &duration, &base, &discount, &final,
		&status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.BookingID = uuid.UUID(bookingID.Bytes)
	t.Status = domain.TripStatus(status)
	if finishedAt.Valid {
		ft := finishedAt.Time
		t.FinishedAt = &ft
	}
	if distance.Valid {
		v := distance.Float64
		t.DistanceKm = &v
	}
	if duration.Valid {
		v := int(duration.Int32)
		t.DurationMinutes = &v
	}
	if base.Valid {
		v := base.Float64
		t.BaseAmount = &v
	}
	if discount.Valid {
		v := discount.Float64
		t.DiscountAmount = &v
	}
	if final.Valid {
		v := final.Float64
		t.FinalAmount = &v
	}

	return t, nil
}
