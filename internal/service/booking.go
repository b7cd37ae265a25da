// Package service contains the business logic for the car-sharing backend.
// Services validate inputs, enforce lifecycle rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
)

// BookingService implements business logic for the booking lifecycle.
type BookingService struct {
	repo repo.BookingRepo
}

// NewBookingService constructs a BookingService backed by the provided repo.
func NewBookingService(r repo.BookingRepo) *BookingService {
	return &BookingService{repo: r}
}

// Create validates and persists a new booking with status=created.
// Returns domain.ErrValidation when a required id is missing, a timestamp is
// zero, or end_at is before start_at.
func (s *BookingService) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if err := validateBooking(b); err != nil {
		return domain.Booking{}, err
	}
	result, err := s.repo.Create(ctx, b)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	return result, nil
}

// Cancel sets the booking's status to cancelled regardless of its current
// status. Cancelling twice yields cancelled both times — the operation is
// idempotent. Returns domain.ErrNotFound for an unknown id.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	result, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	return result, nil
}

// Extend moves the booking's end to newEndAt and sets status=extended,
// regardless of prior status. Further extends are allowed. The new end must
// still be on or after the booking's start.
func (s *BookingService) Extend(ctx context.Context, id uuid.UUID, newEndAt time.Time) (domain.Booking, error) {
	if newEndAt.IsZero() {
		return domain.Booking{}, fmt.Errorf("%w: new_end_at is required", domain.ErrValidation)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Extend: %w", err)
	}
	if newEndAt.Before(current.StartAt) {
		return domain.Booking{}, fmt.Errorf("%w: new_end_at must not be before start_at", domain.ErrValidation)
	}

	result, err := s.repo.Extend(ctx, id, newEndAt)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Extend: %w", err)
	}
	return result, nil
}

// GetByID returns a single booking by ID.
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of bookings plus the total filtered count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) List(ctx context.Context, f repo.BookingFilter, page domain.PageParams) ([]domain.Booking, int, error) {
	bookings, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BookingService.List: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, total, nil
}

// validateBooking enforces creation rules.
//   - user_id, car_id, zone_id must be non-empty (whitespace-only rejected).
//   - start_at and end_at must be set, with end_at not before start_at.
func validateBooking(b domain.Booking) error {
	for _, f := range []struct{ name, value string }{
		{"user_id", b.UserID},
		{"car_id", b.CarID},
		{"zone_id", b.ZoneID},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if b.StartAt.IsZero() || b.EndAt.IsZero() {
		return fmt.Errorf("%w: start_at and end_at are required", domain.ErrValidation)
	}
	if b.EndAt.Before(b.StartAt) {
		return fmt.Errorf("%w: end_at must not be before start_at", domain.ErrValidation)
	}
	return nil
}
