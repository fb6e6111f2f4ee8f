// Package handler implements the HTTP handlers for the Adventure GO API.
// All handlers are methods on Server; methods are split into domain-specific
// files (trip.go, step.go, query.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/spec"
)

// TripServicer defines the trip-level business operations the handler depends
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, ownerID string) ([]domain.Trip, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// StepServicer defines the timeline operations the handler depends on.
type StepServicer interface {
	UpsertStep(ctx context.Context, ownerID string, tripID uuid.UUID, step domain.Step) (domain.Trip, error)
	DeleteStep(ctx context.Context, ownerID string, tripID uuid.UUID, date time.Time) (domain.Trip, error)
	Days(ctx context.Context, ownerID string, tripID uuid.UUID) ([]domain.Day, error)
	AddOrUpdateSpot(ctx context.Context, ownerID string, tripID uuid.UUID, date time.Time, candidate domain.Spot, editingID uuid.UUID) (domain.Trip, error)
	RemoveSpot(ctx context.Context, ownerID string, tripID uuid.UUID, date time.Time, spotID uuid.UUID) (domain.Trip, error)
}

// QueryServicer defines the support-query operations the handler depends on.
type QueryServicer interface {
	Submit(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error)
}

// PlaceServicer defines the place-search operations the handler depends on.
type PlaceServicer interface {
	Search(ctx context.Context, query string) ([]domain.PlaceCandidate, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips   TripServicer
	steps   StepServicer
	queries QueryServicer
	places  PlaceServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, steps StepServicer, queries QueryServicer, places PlaceServicer) *Server {
	return &Server{trips: trips, steps: steps, queries: queries, places: places}
}

// Routes assembles the API routing table. The auth middleware guards
// everything owner-scoped; health, the embedded spec, and the public contact
// form stay outside it.
func (s *Server) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPISpec)
	r.Post("/queries", s.SubmitQuery)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/places", s.SearchPlaces)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/days", s.ListTripDays)
				r.Post("/steps", s.UpsertStep)
				r.Delete("/steps", s.DeleteStep)
				r.Post("/steps/{date}/spots", s.AddOrUpdateSpot)
				r.Delete("/steps/{date}/spots/{spotID}", s.RemoveSpot)
			})
		})
	})

	return r
}

// GetOpenAPISpec handles GET /openapi.yaml. Serving the embedded spec from
// the binary keeps it in sync with the running code.
func (s *Server) GetOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
