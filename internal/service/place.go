package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/adventurego/backend/internal/domain"
)

// PlaceLookup is the external place-search collaborator. Given a free-text
// query it returns candidate places; how it produces them is not the core's
// concern. Implementations live in internal/place.
type PlaceLookup interface {
	Search(ctx context.Context, query string) ([]domain.PlaceCandidate, error)
}

// PlaceService fronts the place-lookup collaborator for the spot-search UI.
type PlaceService struct {
	lookup PlaceLookup
}

// NewPlaceService constructs a PlaceService backed by the provided lookup.
func NewPlaceService(lookup PlaceLookup) *PlaceService {
	return &PlaceService{lookup: lookup}
}

// Search returns candidate places for a free-text query.
// Returns domain.ErrValidation for an empty query; provider failures surface
// as whatever the lookup reports (domain.ErrUnavailable for timeouts).
// Always returns a non-nil slice on success.
func (s *PlaceService) Search(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	candidates, err := s.lookup.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.Search: %w", err)
	}
	if candidates == nil {
		return []domain.PlaceCandidate{}, nil
	}
	return candidates, nil
}
