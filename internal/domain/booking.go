// Package domain contains the core data types for the car-sharing backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a reservation.
type BookingStatus string

const (
	BookingStatusCreated   BookingStatus = "created"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExtended  BookingStatus = "extended"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusExpired   BookingStatus = "expired"
)

// ParseBookingStatus returns the BookingStatus for s, or false when s names
// no known status. Used by handlers to validate the ?status= query filter.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusCreated, BookingStatusCancelled, BookingStatusExtended,
		BookingStatusActive, BookingStatusExpired:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking represents a reservation of a car for a future or current interval.
// User, car, and zone ids are opaque foreign keys owned by external services;
// the core never validates them. Bookings are never deleted, only
// status-transitioned.
type Booking struct {
	ID        uuid.UUID     `json:"id"`
	UserID    string        `json:"user_id"`
	CarID     string        `json:"car_id"`
	ZoneID    string        `json:"zone_id"`
	StartAt   time.Time     `json:"start_at"`
	EndAt     time.Time     `json:"end_at"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
