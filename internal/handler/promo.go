package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/carshare/backend/internal/service"
)

type createPromoRequest struct {
	Code            string     `json:"code"`
	DiscountPercent float64    `json:"discount_percent"`
	ExpiresAt       *time.Time `json:"expires_at"`
	MinOrderAmount  float64    `json:"min_order_amount"`
	MaxUses         *int       `json:"max_uses"`
}

type promoCheckRequest struct {
	PromoCode   string  `json:"promo_code"`
	OrderAmount float64 `json:"order_amount"`
}

// CreatePromoCode handles POST /api/promocodes.
func (s *Server) CreatePromoCode(w http.ResponseWriter, r *http.Request) {
	var req createPromoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.promos.Create(r.Context(), service.CreatePromoInput{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ExpiresAt:       req.ExpiresAt,
		MinOrderAmount:  req.MinOrderAmount,
		MaxUses:         req.MaxUses,
	})
	if err != nil {
		respondServiceError(w, r, err, "promo code not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ValidatePromoCode handles POST /api/promocodes/validate.
// Always answers 200; rejection reasons come back in the body so clients
// can check codes without tripping error handling.
func (s *Server) ValidatePromoCode(w http.ResponseWriter, r *http.Request) {
	var req promoCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.promos.Validate(r.Context(), req.PromoCode, req.OrderAmount)
	if err != nil {
		respondServiceError(w, r, err, "promo code not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ApplyPromoCode handles POST /api/promocodes/apply. On success one use is
// consumed; rejections map to their dedicated error codes.
func (s *Server) ApplyPromoCode(w http.ResponseWriter, r *http.Request) {
	var req promoCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.promos.Apply(r.Context(), req.PromoCode, req.OrderAmount)
	if err != nil {
		respondServiceError(w, r, err, "promo code not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
