package domain

import (
	"time"

	"github.com/google/uuid"
)

// Fine is a parking or traffic penalty issued against a trip.
// Fines are immutable once created.
type Fine struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	TripID    uuid.UUID `json:"trip_id"`
	Reason    string    `json:"reason"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
