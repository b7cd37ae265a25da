package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/carshare/backend/internal/clock"
	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
)

// Validate messages. Part of the API response body, so worded for end users.
const (
	promoMsgNotFound     = "promo code not found"
	promoMsgExpired      = "promo code expired"
	promoMsgLimitReached = "promo code usage limit reached"
	promoMsgBelowMin     = "order amount is below the promo minimum"
	promoMsgOK           = "promo code can be applied"
)

const (
	defaultPromoValidity = 30 * 24 * time.Hour
	defaultPromoMaxUses  = 100
)

// PromoService implements the promo ledger: code definitions plus their
// usage budget. Validate is read-only; Apply is the only operation that
// consumes a use.
type PromoService struct {
	repo  repo.PromoRepo
	clock clock.Clock
}

// NewPromoService constructs a PromoService backed by the provided repo.
// The clock drives default expiry and expiry comparisons; pass
// clock.NewFixed in tests.
func NewPromoService(r repo.PromoRepo, clk clock.Clock) *PromoService {
	return &PromoService{repo: r, clock: clk}
}

// CreatePromoInput carries the promo create request. Nil ExpiresAt defaults
// to 30 days from now; nil MaxUses defaults to 100.
type CreatePromoInput struct {
	Code            string
	DiscountPercent float64
	ExpiresAt       *time.Time
	MinOrderAmount  float64
	MaxUses         *int
}

// Create validates and persists a new promo code with used_count=0.
// The code is normalized to upper case before storage.
// Returns domain.ErrAlreadyExists when the normalized code is taken.
func (s *PromoService) Create(ctx context.Context, in CreatePromoInput) (domain.PromoCode, error) {
	code := normalizeCode(in.Code)
	if code == "" {
		return domain.PromoCode{}, fmt.Errorf("%w: code is required", domain.ErrValidation)
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return domain.PromoCode{}, fmt.Errorf("%w: discount_percent must be between 0 and 100", domain.ErrValidation)
	}
	if in.MinOrderAmount < 0 {
		return domain.PromoCode{}, fmt.Errorf("%w: min_order_amount must not be negative", domain.ErrValidation)
	}

	maxUses := defaultPromoMaxUses
	if in.MaxUses != nil {
		maxUses = *in.MaxUses
	}
	if maxUses < 1 {
		return domain.PromoCode{}, fmt.Errorf("%w: max_uses must be at least 1", domain.ErrValidation)
	}

	expiresAt := s.clock.Now().Add(defaultPromoValidity)
	if in.ExpiresAt != nil {
		expiresAt = *in.ExpiresAt
	}

	p := domain.PromoCode{
		Code:            code,
		DiscountPercent: in.DiscountPercent,
		ExpiresAt:       domain.NaiveUTC(expiresAt),
		MinOrderAmount:  in.MinOrderAmount,
		MaxUses:         maxUses,
	}

	result, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.PromoCode{}, fmt.Errorf("service.PromoService.Create: %w", err)
	}
	return result, nil
}

// Validate checks whether code can be applied to orderAmount without
// consuming anything. Every rejection reason comes back as a structured
// Valid=false result with a message; the returned error is reserved for
// infrastructure failures.
func (s *PromoService) Validate(ctx context.Context, code string, orderAmount float64) (domain.PromoValidation, error) {
	code = normalizeCode(code)

	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PromoValidation{PromoCode: code, Message: promoMsgNotFound}, nil
		}
		return domain.PromoValidation{}, fmt.Errorf("service.PromoService.Validate: %w", err)
	}

	invalid := func(msg string) domain.PromoValidation {
		return domain.PromoValidation{
			PromoCode:       code,
			DiscountPercent: p.DiscountPercent,
			Message:         msg,
		}
	}

	switch {
	case p.Expired(s.clock.Now()):
		return invalid(promoMsgExpired), nil
	case p.UsedCount >= p.MaxUses:
		return invalid(promoMsgLimitReached), nil
	case orderAmount < p.MinOrderAmount:
		return invalid(promoMsgBelowMin), nil
	}

	return domain.PromoValidation{
		Valid:           true,
		PromoCode:       code,
		DiscountAmount:  p.DiscountFor(orderAmount),
		DiscountPercent: p.DiscountPercent,
		Message:         promoMsgOK,
	}, nil
}

// Apply runs the same checks as Validate but surfaces each rejection as an
// explicit error, and on success consumes exactly one use. The increment is
// a conditional update keyed on used_count < max_uses, so two concurrent
// applies with one use remaining cannot both succeed — the loser gets
// domain.ErrPromoLimitReached.
func (s *PromoService) Apply(ctx context.Context, code string, orderAmount float64) (domain.PromoApplication, error) {
	code = normalizeCode(code)

	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return domain.PromoApplication{}, fmt.Errorf("service.PromoService.Apply: %w", err)
	}

	switch {
	case p.Expired(s.clock.Now()):
		return domain.PromoApplication{}, fmt.Errorf("service.PromoService.Apply: %w", domain.ErrPromoExpired)
	case p.UsedCount >= p.MaxUses:
		return domain.PromoApplication{}, fmt.Errorf("service.PromoService.Apply: %w", domain.ErrPromoLimitReached)
	case orderAmount < p.MinOrderAmount:
		return domain.PromoApplication{}, fmt.Errorf("service.PromoService.Apply: %w", domain.ErrPromoBelowMinimum)
	}

	// The pre-checks above are advisory; this is the linearization point.
	usageCount, err := s.repo.IncrementUsage(ctx, code)
	if err != nil {
		return domain.PromoApplication{}, fmt.Errorf("service.PromoService.Apply: %w", err)
	}

	discount := p.DiscountFor(orderAmount)
	return domain.PromoApplication{
		Status:          "applied",
		PromoCode:       code,
		DiscountApplied: discount,
		FinalAmount:     domain.Round2(orderAmount - discount),
		UsageCount:      usageCount,
		MaxUsages:       p.MaxUses,
	}, nil
}

// GetByCode returns a promo definition by its (normalized) code.
func (s *PromoService) GetByCode(ctx context.Context, code string) (domain.PromoCode, error) {
	result, err := s.repo.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return domain.PromoCode{}, fmt.Errorf("service.PromoService.GetByCode: %w", err)
	}
	return result, nil
}

// normalizeCode produces the canonical lookup key for a promo code.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
