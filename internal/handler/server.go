// Package handler implements the HTTP handlers for the car-sharing backend.
// All handlers are methods on Server, split into resource-specific files
// (booking.go, trip.go, promo.go, fine.go) that share the same struct.
// Handlers translate between JSON DTOs and domain types; business rules
// live in the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
	"github.com/pkordes/carshare/backend/internal/service"
)

// BookingServicer defines the business operations the booking handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type BookingServicer interface {
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	Extend(ctx context.Context, id uuid.UUID, newEndAt time.Time) (domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	List(ctx context.Context, f repo.BookingFilter, page domain.PageParams) ([]domain.Booking, int, error)
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Start(ctx context.Context, t domain.Trip) (domain.Trip, error)
	Finish(ctx context.Context, id uuid.UUID, in service.FinishInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, f repo.TripFilter, page domain.PageParams) ([]domain.Trip, int, error)
}

// PromoServicer defines the business operations the promo handlers depend on.
type PromoServicer interface {
	Create(ctx context.Context, in service.CreatePromoInput) (domain.PromoCode, error)
	Validate(ctx context.Context, code string, orderAmount float64) (domain.PromoValidation, error)
	Apply(ctx context.Context, code string, orderAmount float64) (domain.PromoApplication, error)
}

// FineServicer defines the business operations the fine handlers depend on.
type FineServicer interface {
	Create(ctx context.Context, f domain.Fine) (domain.Fine, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Fine, error)
	List(ctx context.Context, userID string, page domain.PageParams) ([]domain.Fine, int, error)
}

// Server holds the services all HTTP handlers dispatch to.
type Server struct {
	bookings BookingServicer
	trips    TripServicer
	promos   PromoServicer
	fines    FineServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(bookings BookingServicer, trips TripServicer, promos PromoServicer, fines FineServicer) *Server {
	return &Server{bookings: bookings, trips: trips, promos: promos, fines: fines}
}

// NewRouter mounts every API route on a fresh chi router.
// Middleware is the caller's concern — main.go wraps this router,
// handler tests hit it bare.
func NewRouter(s *Server) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(api chi.Router) {
		api.Route("/bookings", func(b chi.Router) {
			b.Post("/", s.CreateBooking)
			b.Get("/", s.ListBookings)
			b.Get("/{id}", s.GetBooking)
			b.Post("/{id}/cancel", s.CancelBooking)
			b.Post("/{id}/extend", s.ExtendBooking)
		})
		api.Route("/trips", func(t chi.Router) {
			t.Post("/start", s.StartTrip)
			t.Get("/", s.ListTrips)
			t.Get("/{id}", s.GetTrip)
			t.Post("/{id}/finish", s.FinishTrip)
		})
		api.Route("/promocodes", func(p chi.Router) {
			p.Post("/", s.CreatePromoCode)
			p.Post("/validate", s.ValidatePromoCode)
			p.Post("/apply", s.ApplyPromoCode)
		})
		api.Route("/fines", func(f chi.Router) {
			f.Post("/", s.CreateFine)
			f.Get("/", s.ListFines)
			f.Get("/{id}", s.GetFine)
		})
	})

	return r
}

// pathID parses the {id} URL parameter. A malformed UUID can never name an
// existing record, so it is reported as not found rather than as a
// validation failure.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst, writing the error response
// itself when the body is oversized or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, codeRequestTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid request body")
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter. Returns an error for
// present-but-unparseable values; nil when the parameter is absent.
func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// pageParams parses ?offset= and ?limit=, writing the error response itself
// when either is malformed.
func pageParams(w http.ResponseWriter, r *http.Request) (domain.PageParams, bool) {
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "offset must be an integer")
		return domain.PageParams{}, false
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "limit must be an integer")
		return domain.PageParams{}, false
	}
	return domain.NewPageParams(offset, limit), true
}
