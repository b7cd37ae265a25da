package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/carshare/backend/internal/domain"
)

type createFineRequest struct {
	UserID string    `json:"user_id"`
	TripID uuid.UUID `json:"trip_id"`
	Reason string    `json:"reason"`
	Amount float64   `json:"amount"`
}

type fineListResponse struct {
	Total int           `json:"total"`
	Items []domain.Fine `json:"items"`
}

// CreateFine handles POST /api/fines.
func (s *Server) CreateFine(w http.ResponseWriter, r *http.Request) {
	var req createFineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.fines.Create(r.Context(), domain.Fine{
		UserID: req.UserID,
		TripID: req.TripID,
		Reason: req.Reason,
		Amount: req.Amount,
	})
	if err != nil {
		respondServiceError(w, r, err, "fine not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetFine handles GET /api/fines/{id}.
func (s *Server) GetFine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "fine")
	if !ok {
		return
	}

	fine, err := s.fines.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "fine not found")
		return
	}

	writeJSON(w, http.StatusOK, fine)
}

// ListFines handles GET /api/fines.
// Supports ?user_id=, ?offset=, and ?limit= query parameters.
func (s *Server) ListFines(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	fines, total, err := s.fines.List(r.Context(), r.URL.Query().Get("user_id"), page)
	if err != nil {
		respondServiceError(w, r, err, "fine not found")
		return
	}

	writeJSON(w, http.StatusOK, fineListResponse{Total: total, Items: fines})
}
