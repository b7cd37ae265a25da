package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/carshare/backend/internal/domain"
	"github.com/pkordes/carshare/backend/internal/repo"
)

// FineService implements business logic for fines.
type FineService struct {
	repo repo.FineRepo
}

// NewFineService constructs a FineService backed by the provided repo.
func NewFineService(r repo.FineRepo) *FineService {
	return &FineService{repo: r}
}

// Create validates and persists a new fine.
func (s *FineService) Create(ctx context.Context, f domain.Fine) (domain.Fine, error) {
	if strings.TrimSpace(f.UserID) == "" {
		return domain.Fine{}, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if f.TripID == uuid.Nil {
		return domain.Fine{}, fmt.Errorf("%w: trip_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(f.Reason) == "" {
		return domain.Fine{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	if f.Amount <= 0 {
		return domain.Fine{}, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	result, err := s.repo.Create(ctx, f)
	if err != nil {
		return domain.Fine{}, fmt.Errorf("service.FineService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single fine by ID.
func (s *FineService) GetByID(ctx context.Context, id uuid.UUID) (domain.Fine, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Fine{}, fmt.Errorf("service.FineService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of fines plus the total filtered count.
func (s *FineService) List(ctx context.Context, userID string, page domain.PageParams) ([]domain.Fine, int, error) {
	fines, total, err := s.repo.List(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FineService.List: %w", err)
	}
	if fines == nil {
		fines = []domain.Fine{}
	}
	return fines, total, nil
}
