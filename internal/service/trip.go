package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
)

// DiscountMode selects how trip finish turns a promo code into a discount.
type DiscountMode string

const (
	// DiscountOnPresence applies the flat 10% whenever a non-empty promo
	// code was supplied, without consulting the promo ledger. This is the
	// historical behavior: the code is never validated and no use is
	// consumed.
	DiscountOnPresence DiscountMode = "presence"

	// DiscountFromLedger asks the promo ledger to apply the code against
	// the base amount, consuming a use. A rejected code (unknown, expired,
	// exhausted, below minimum) yields no discount but does not fail the
	// finish — the trip settles either way.
	DiscountFromLedger DiscountMode = "ledger"
)

// PromoApplier is the slice of the promo ledger the trip service needs in
// ledger mode. *PromoService satisfies it.
type PromoApplier interface {
	Apply(ctx context.Context, code string, orderAmount float64) (domain.PromoApplication, error)
}

// TripService implements business logic for the trip lifecycle.
// It holds the booking repo because starting a trip checks that the
// referenced booking exists.
type TripService struct {
	trips    repo.TripRepo
	bookings repo.BookingRepo
	promos   PromoApplier
	mode     DiscountMode
}

// NewTripService constructs a TripService. promos may be nil when mode is
// DiscountOnPresence; in ledger mode it must be set.
func NewTripService(trips repo.TripRepo, bookings repo.BookingRepo, promos PromoApplier, mode DiscountMode) *TripService {
	if mode == "" {
		mode = DiscountOnPresence
	}
	return &TripService{trips: trips, bookings: bookings, promos: promos, mode: mode}
}

// Start validates the request, verifies the referenced booking exists, and
// persists a new in_progress trip. The booking's status is not checked —
// only its existence; bookings and trips otherwise live independent lives.
func (s *TripService) Start(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if t.BookingID == uuid.Nil {
		return domain.Trip{}, fmt.Errorf("%w: booking_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(t.UserID) == "" {
		return domain.Trip{}, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(t.CarID) == "" {
		return domain.Trip{}, fmt.Errorf("%w: car_id is required", domain.ErrValidation)
	}

	if _, err := s.bookings.GetByID(ctx, t.BookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("%w: booking %s not found", domain.ErrValidation, t.BookingID)
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", err)
	}

	result, err := s.trips.Create(ctx, t)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", err)
	}
	return result, nil
}

// FinishInput carries the trip finish request.
type FinishInput struct {
	DistanceKm      float64
	DurationMinutes int
	ParkingFines    float64
	PromoCode       string
}

// Finish settles an in_progress trip: computes the fare from telemetry and
// fines, resolves the promo discount per the configured DiscountMode, and
// flips the trip to finished. All three amounts are rounded to 2 decimals
// here, at the single persistence point. Finishing is one-way and one-time;
// a second finish returns a validation error.
func (s *TripService) Finish(ctx context.Context, id uuid.UUID, in FinishInput) (domain.Trip, error) {
	if in.DistanceKm < 0 || in.DurationMinutes < 0 || in.ParkingFines < 0 {
		return domain.Trip{}, fmt.Errorf("%w: telemetry values must not be negative", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}
	if trip.Status == domain.TripStatusFinished {
		return domain.Trip{}, fmt.Errorf("%w: trip already finished", domain.ErrValidation)
	}

	promoCode := strings.TrimSpace(in.PromoCode)
	fare := domain.ComputeFare(in.DistanceKm, in.DurationMinutes, in.ParkingFines,
		s.mode == DiscountOnPresence && promoCode != "")

	discount := fare.Discount
	if s.mode == DiscountFromLedger && promoCode != "" {
		app, err := s.promos.Apply(ctx, promoCode, domain.Round2(fare.Base))
		switch {
		case err == nil:
			discount = app.DiscountApplied
		case isPromoRejection(err):
			// The trip settles without a discount; no ledger state changed.
			discount = 0
		default:
			return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
		}
	}

	base := domain.Round2(fare.Base)
	discount = domain.Round2(discount)

	settlement := repo.TripSettlement{
		DistanceKm:      in.DistanceKm,
		DurationMinutes: in.DurationMinutes,
		BaseAmount:      base,
		DiscountAmount:  discount,
		FinalAmount:     domain.Round2(base - discount),
	}

	result, err := s.trips.Finish(ctx, id, settlement)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The trip existed a moment ago, so a concurrent finish won.
			return domain.Trip{}, fmt.Errorf("%w: trip already finished", domain.ErrValidation)
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips plus the total filtered count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, f repo.TripFilter, page domain.PageParams) ([]domain.Trip, int, error) {
	trips, total, err := s.trips.List(ctx, f, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// isPromoRejection reports whether err is one of the ledger's business
// rejections, as opposed to an infrastructure failure.
func isPromoRejection(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrPromoExpired) ||
		errors.Is(err, domain.ErrPromoLimitReached) ||
		errors.Is(err, domain.ErrPromoBelowMinimum)
}
