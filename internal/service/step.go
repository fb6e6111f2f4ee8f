package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/repo"
)

// StepService implements the day-by-day timeline operations on one trip:
// step upsert/delete, the day view, and spot add/edit/remove within a step.
//
// Every operation is a whole-aggregate read-modify-write: load the trip,
// apply the timeline change in memory, persist the whole trip. A concurrent
// writer to the same trip is resolved by last-write-wins on the aggregate.
type StepService struct {
	trips repo.TripRepo
}

// NewStepService constructs a StepService backed by the provided TripRepo.
func NewStepService(trips repo.TripRepo) *StepService {
	return &StepService{trips: trips}
}

// UpsertStep records a step for its date in the owner's trip, replacing any
// existing step on that date. Spots arriving in the payload are run through
// the registry rules: IDs minted where missing, duplicates collapsed.
//
// Returns domain.ErrNotFound if the trip is not owned/found,
// domain.ErrValidation when the title is missing, and
// domain.ErrDateOutOfRange when the date falls outside the trip's range.
func (s *StepService) UpsertStep(ctx context.Context, ownerID string, tripID uuid.UUID, step domain.Step) (domain.Trip, error) {
	if strings.TrimSpace(step.Title) == "" {
		return domain.Trip{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if step.Date.IsZero() {
		return domain.Trip{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.UpsertStep: %w", err)
	}

	if step.Photos == nil {
		step.Photos = []string{}
	}
	step.Spots = domain.SanitizeSpots(step.Spots)

	trip, err = domain.UpsertStep(trip, step)
	if err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.UpsertStep: %w", err)
	}
	return updated, nil
}

// DeleteStep removes the step for the given date from the owner's trip.
// A date with no step is a no-op that still returns the (unchanged) trip, so
// clients can retry a delete without knowing server state.
// Returns domain.ErrNotFound if the trip is not owned/found.
func (s *StepService) DeleteStep(ctx context.Context, ownerID string, tripID uuid.UUID, date time.Time) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.DeleteStep: %w", err)
	}

	trip = domain.DeleteStep(trip, date)

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.DeleteStep: %w", err)
	}
	return updated, nil
}

// Days returns the trip's full date range as one entry per calendar day,
// each carrying its step when one exists.
// Returns domain.ErrNotFound if the trip is not owned/found.
func (s *StepService) Days(ctx context.Context, ownerID string, tripID uuid.UUID) ([]domain.Day, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StepService.Days: %w", err)
	}
	return domain.NewTimeline(trip).Days(), nil
}

// AddOrUpdateSpot adds a spot to the step on the given date, or edits an
// existing one when editingID is set. Duplicate candidates (same source ref
// or case-insensitive same name) are a silent no-op.
//
// Returns domain.ErrNotFound if the trip is not owned/found or the date has
// no step, and domain.ErrValidation when the spot name is missing.
func (s *StepService) AddOrUpdateSpot(ctx context.Context, ownerID string, tripID uuid.UUID, date time.Time, candidate domain.Spot, editingID uuid.UUID) (domain.Trip, error) {
	if strings.TrimSpace(candidate.Name) == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.AddOrUpdateSpot: %w", err)
	}

	step, ok := domain.StepForDate(trip, date)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.StepService.AddOrUpdateSpot: no step on %s: %w",
			domain.DateKey(date), domain.ErrNotFound)
	}

	candidate.ID = uuid.Nil // IDs are never caller-assigned; edits go through editingID
	step.Spots = domain.AddOrUpdateSpot(step.Spots, candidate, editingID)

	trip, err = domain.UpsertStep(trip, step)
	if err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.AddOrUpdateSpot: %w", err)
	}
	return updated, nil
}

// RemoveSpot removes a spot by ID from the step on the given date. An absent
// spot ID is a no-op. Returns domain.ErrNotFound if the trip is not
// owned/found or the date has no step.
func (s *StepService) RemoveSpot(ctx context.Context, ownerID string, tripID uuid.UUID, date time.Time, spotID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.RemoveSpot: %w", err)
	}

	step, ok := domain.StepForDate(trip, date)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.StepService.RemoveSpot: no step on %s: %w",
			domain.DateKey(date), domain.ErrNotFound)
	}

	step.Spots = domain.RemoveSpot(step.Spots, spotID)

	trip, err = domain.UpsertStep(trip, step)
	if err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.StepService.RemoveSpot: %w", err)
	}
	return updated, nil
}
