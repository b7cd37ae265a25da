package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a rental session.
// A trip starts in_progress and finishes exactly once; there is no way back.
type TripStatus string

const (
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusFinished   TripStatus = "finished"
)

// ParseTripStatus returns the TripStatus for s, or false when s names no
// known status.
func ParseTripStatus(s string) (TripStatus, bool) {
	switch TripStatus(s) {
	case TripStatusInProgress, TripStatusFinished:
		return TripStatus(s), true
	}
	return "", false
}

// Trip represents an active or completed rental session linked to a booking.
// Telemetry and amount fields are nil while the trip is in progress and are
// set exactly once when it finishes.
type Trip struct {
	ID              uuid.UUID  `json:"id"`
	BookingID       uuid.UUID  `json:"booking_id"`
	UserID          string     `json:"user_id"`
	CarID           string     `json:"car_id"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	DistanceKm      *float64   `json:"distance_km,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	BaseAmount      *float64   `json:"base_amount,omitempty"`
	DiscountAmount  *float64   `json:"discount_amount,omitempty"`
	FinalAmount     *float64   `json:"final_amount,omitempty"`
	Status          TripStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
