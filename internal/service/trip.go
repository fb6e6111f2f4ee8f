// Package service contains the business logic for the Adventure GO API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/repo"
)

// TripService implements business logic for trip-level CRUD.
// Steps and spots are mutated through StepService; this service never lets a
// caller replace the embedded step list directly.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// Create validates and persists a new trip for the owner.
// Returns domain.ErrValidation for missing required fields and
// domain.ErrInvalidRange when the departure date precedes arrival.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.ArrivalDate = domain.NormalizeDate(trip.ArrivalDate)
	trip.DepartureDate = domain.NormalizeDate(trip.DepartureDate)
	trip.Steps = []domain.Step{} // steps are added day by day, never at creation

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns one of the owner's trips.
// Returns domain.ErrNotFound if the trip does not exist or belongs to someone else.
func (s *TripService) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all of the owner's trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update merges the provided top-level fields into the owner's trip and
// persists the result. The embedded step list is carried over untouched.
// Returns domain.ErrNotFound if the trip is not owned/found, and the same
// validation errors as Create when the merged trip is invalid.
func (s *TripService) Update(ctx context.Context, ownerID string, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if upd.Destination != nil {
		trip.Destination = *upd.Destination
	}
	if upd.TripName != nil {
		trip.TripName = *upd.TripName
	}
	if upd.Summary != nil {
		trip.Summary = *upd.Summary
	}
	if upd.CoverImage != nil {
		trip.CoverImage = *upd.CoverImage
	}
	if upd.ArrivalDate != nil {
		trip.ArrivalDate = domain.NormalizeDate(*upd.ArrivalDate)
	}
	if upd.DepartureDate != nil {
		trip.DepartureDate = domain.NormalizeDate(*upd.DepartureDate)
	}

	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes the owner's trip and everything embedded in it.
// Returns domain.ErrNotFound if the trip is not owned/found.
func (s *TripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to Create and Update.
//   - Destination and trip name must be non-empty (whitespace-only rejected).
//   - Both dates must be present.
//   - The departure date must not precede the arrival date.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.TripName) == "" {
		return fmt.Errorf("%w: tripName is required", domain.ErrValidation)
	}
	if trip.ArrivalDate.IsZero() {
		return fmt.Errorf("%w: arrivalDate is required", domain.ErrValidation)
	}
	if trip.DepartureDate.IsZero() {
		return fmt.Errorf("%w: departureDate is required", domain.ErrValidation)
	}
	if domain.NormalizeDate(trip.DepartureDate).Before(domain.NormalizeDate(trip.ArrivalDate)) {
		return fmt.Errorf("%w: departureDate must not be before arrivalDate", domain.ErrInvalidRange)
	}
	return nil
}
