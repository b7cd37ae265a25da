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

// FineRepo defines the persistence operations for Fines.
type FineRepo interface {
	// Create inserts a new fine and returns the persisted record.
	Create(ctx context.Context, f domain.Fine) (domain.Fine, error)

	// GetByID retrieves a single fine by its UUID primary key.
	// Returns domain.ErrNotFound if no fine with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Fine, error)

	// List returns one page of fines, optionally filtered by user, plus the
	// total match count before pagination, ordered by created_at then id.
	List(ctx context.Context, userID string, page domain.PageParams) ([]domain.Fine, int, error)
}

// pgFineRepo is the Postgres implementation of FineRepo.
type pgFineRepo struct {
	db db
}

// NewFineRepo constructs a FineRepo backed by the provided db connection.
func NewFineRepo(db db) FineRepo {
	return &pgFineRepo{db: db}
}

const fineColumns = `id, user_id, trip_id, reason, amount, created_at`

func (r *pgFineRepo) Create(ctx context.Context, f domain.Fine) (domain.Fine, error) {
	const q = `
		INSERT INTO fines (user_id, trip_id, reason, amount)
		VALUES (@user_id, @trip_id, @reason, @amount)
		RETURNING ` + fineColumns

	args := pgx.NamedArgs{
		"user_id": f.UserID,
		"trip_id": f.TripID,
		"reason":  f.Reason,
		"amount":  f.Amount,
	}

	result, err := scanFine(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Fine{}, fmt.Errorf("repo.FineRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFineRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Fine, error) {
	const q = `SELECT ` + fineColumns + ` FROM fines WHERE id = @id`

	result, err := scanFine(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Fine{}, fmt.Errorf("repo.FineRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgFineRepo) List(ctx context.Context, userID string, page domain.PageParams) ([]domain.Fine, int, error) {
	const where = ` WHERE (@user_id = '' OR user_id = @user_id)`

	args := pgx.NamedArgs{
		"user_id": userID,
		"offset":  page.Offset,
		"limit":   page.Limit,
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM fines`+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.FineRepo.List: count: %w", err)
	}

	const q = `SELECT ` + fineColumns + ` FROM fines` + where + `
		ORDER BY created_at, id
		OFFSET @offset LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.FineRepo.List: %w", err)
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.FineRepo.List: scan: %w", err)
		}
		fines = append(fines, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.FineRepo.List: rows: %w", err)
	}

	return fines, total, nil
}

// scanFine maps a single database row into a domain.Fine.
func scanFine(s scanner) (domain.Fine, error) {
	var (
		f      domain.Fine
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &f.UserID, &tripID, &f.Reason, &f.Amount, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Fine{}, domain.ErrNotFound
		}
		return domain.Fine{}, err
	}

	f.ID = uuid.UUID(id.Bytes)
	f.TripID = uuid.UUID(tripID.Bytes)
	return f, nil
}
