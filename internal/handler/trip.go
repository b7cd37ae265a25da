package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
	"github.com/pkordes/carshare/backend/internal/service"
)

type startTripRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    string    `json:"user_id"`
	CarID     string    `json:"car_id"`
}

type finishTripRequest struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	ParkingFines    float64 `json:"parking_fines"`
	PromoCode       string  `json:"promo_code"`
}

type tripListResponse struct {
	Total int           `json:"total"`
	Items []domain.Trip `json:"items"`
}

// StartTrip handles POST /api/trips/start.
func (s *Server) StartTrip(w http.ResponseWriter, r *http.Request) {
	var req startTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	started, err := s.trips.Start(r.Context(), domain.Trip{
		BookingID: req.BookingID,
		UserID:    req.UserID,
		CarID:     req.CarID,
	})
	if err != nil {
		respondServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, started)
}

// FinishTrip handles POST /api/trips/{id}/finish.
func (s *Server) FinishTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trip")
	if !ok {
		return
	}

	var req finishTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	finished, err := s.trips.Finish(r.Context(), id, service.FinishInput{
		DistanceKm:      req.DistanceKm,
		DurationMinutes: req.DurationMinutes,
		ParkingFines:    req.ParkingFines,
		PromoCode:       req.PromoCode,
	})
	if err != nil {
		respondServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, finished)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trip")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ListTrips handles GET /api/trips.
// Supports ?user_id=, ?status=, ?offset=, and ?limit= query parameters.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	filter := repo.TripFilter{UserID: r.URL.Query().Get("user_id")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseTripStatus(raw)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "unknown trip status: "+raw)
			return
		}
		filter.Status = status
	}

	trips, total, err := s.trips.List(r.Context(), filter, page)
	if err != nil {
		respondServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripListResponse{Total: total, Items: trips})
}
