package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
)

type createBookingRequest struct {
	UserID  string    `json:"user_id"`
	CarID   string    `json:"car_id"`
	ZoneID  string    `json:"zone_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type extendBookingRequest struct {
	NewEndAt time.Time `json:"new_end_at"`
}

type bookingListResponse struct {
	Total int              `json:"total"`
	Items []domain.Booking `json:"items"`
}

// CreateBooking handles POST /api/bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.bookings.Create(r.Context(), domain.Booking{
		UserID:  req.UserID,
		CarID:   req.CarID,
		ZoneID:  req.ZoneID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	})
	if err != nil {
		respondServiceError(w, r, err, "booking not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// CancelBooking handles POST /api/bookings/{id}/cancel.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	cancelled, err := s.bookings.Cancel(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, cancelled)
}

// ExtendBooking handles POST /api/bookings/{id}/extend.
func (s *Server) ExtendBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	var req extendBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	extended, err := s.bookings.Extend(r.Context(), id, req.NewEndAt)
	if err != nil {
		respondServiceError(w, r, err, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, extended)
}

// GetBooking handles GET /api/bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings.
// Supports ?user_id=, ?status=, ?offset=, and ?limit= query parameters
// (defaults: offset=0, limit=20, max 100).
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	filter := repo.BookingFilter{UserID: r.URL.Query().Get("user_id")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseBookingStatus(raw)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "unknown booking status: "+raw)
			return
		}
		filter.Status = status
	}

	bookings, total, err := s.bookings.List(r.Context(), filter, page)
	if err != nil {
		respondServiceError(w, r, err, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, bookingListResponse{Total: total, Items: bookings})
}
