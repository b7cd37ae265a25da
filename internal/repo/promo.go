package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/carshare/backend/internal/domain"
)

// PromoRepo defines the persistence operations for promo codes.
// Codes are keyed by their normalized (upper-cased) form; normalization is
// the service's job, the repo stores and looks up verbatim.
type PromoRepo interface {
	// Create inserts a new promo code with used_count=0 and returns the
	// persisted record. Returns domain.ErrAlreadyExists when the code is
	// already present.
	Create(ctx context.Context, p domain.PromoCode) (domain.PromoCode, error)

	// GetByCode retrieves a promo code by its normalized code.
	// Returns domain.ErrNotFound if no such code exists.
	GetByCode(ctx context.Context, code string) (domain.PromoCode, error)

	// IncrementUsage bumps used_count by exactly 1, but only while
	// used_count < max_uses, and returns the post-increment count. The
	// conditional single-statement update is what makes concurrent applies
	// safe: with one use remaining, the second caller matches zero rows.
	// Returns domain.ErrPromoLimitReached when no row qualified. Callers
	// must have confirmed the code exists first — codes are never deleted,
	// so a zero-row update can only mean an exhausted budget.
	IncrementUsage(ctx context.Context, code string) (int, error)
}

// pgPromoRepo is the Postgres implementation of PromoRepo.
type pgPromoRepo struct {
	db db
}

// NewPromoRepo constructs a PromoRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPromoRepo(db db) PromoRepo {
	return &pgPromoRepo{db: db}
}

const promoColumns = `code, discount_percent, expires_at, min_order_amount,
		max_uses, used_count, created_at, updated_at`

func (r *pgPromoRepo) Create(ctx context.Context, p domain.PromoCode) (domain.PromoCode, error) {
	const q = `
		INSERT INTO promo_codes (code, discount_percent, expires_at, min_order_amount, max_uses)
		VALUES (@code, @discount_percent, @expires_at, @min_order_amount, @max_uses)
		RETURNING ` + promoColumns

	args := pgx.NamedArgs{
		"code":             p.Code,
		"discount_percent": p.DiscountPercent,
		"expires_at":       p.ExpiresAt,
		"min_order_amount": p.MinOrderAmount,
		"max_uses":         p.MaxUses,
	}

	result, err := scanPromo(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.PromoCode{}, fmt.Errorf("repo.PromoRepo.Create: %w", domain.ErrAlreadyExists)
		}
		return domain.PromoCode{}, fmt.Errorf("repo.PromoRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPromoRepo) GetByCode(ctx context.Context, code string) (domain.PromoCode, error) {
	const q = `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = @code`

	result, err := scanPromo(r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code}))
	if err != nil {
		return domain.PromoCode{}, fmt.Errorf("repo.PromoRepo.GetByCode: %w", err)
	}
	return result, nil
}

func (r *pgPromoRepo) IncrementUsage(ctx context.Context, code string) (int, error) {
	const q = `
		UPDATE promo_codes
		SET used_count = used_count + 1, updated_at = now()
		WHERE code = @code AND used_count < max_uses
		RETURNING used_count`

	var count int
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code}).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("repo.PromoRepo.IncrementUsage: %w", domain.ErrPromoLimitReached)
		}
		return 0, fmt.Errorf("repo.PromoRepo.IncrementUsage: %w", err)
	}
	return count, nil
}

// scanPromo maps a single database row into a domain.PromoCode.
// expires_at is a timezone-less column; pgx hands it back with a UTC
// location, which is exactly the naive reading the expiry check expects.
func scanPromo(s scanner) (domain.PromoCode, error) {
	var p domain.PromoCode

	err := s.Scan(&p.Code, &p.DiscountPercent, &p.ExpiresAt, &p.MinOrderAmount,
		&p.MaxUses, &p.UsedCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PromoCode{}, domain.ErrNotFound
		}
		return domain.PromoCode{}, err
	}

	return p, nil
}
