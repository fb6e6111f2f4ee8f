package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/middleware"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}

	var body createTripRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), body.toTrip(owner))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. The owner is inferred from the caller
// identity; there is no way to list someone else's trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}

	trips, err := s.trips.List(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), owner, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}. The body may carry any subset of
// the top-level trip fields; the step list is not writable here.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	var body updateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), owner, id, body.toUpdate())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	if err := s.trips.Delete(r.Context(), owner, id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- request/response shapes ------------------------------------------------

// createTripRequest is the POST /trips body. Trip dates are strict calendar
// dates on this path — the canonical YYYY-MM-DD form, parsed once at the
// boundary.
type createTripRequest struct {
	Destination   string              `json:"destination"`
	TripName      string              `json:"tripName"`
	ArrivalDate   *openapi_types.Date `json:"arrivalDate"`
	DepartureDate *openapi_types.Date `json:"departureDate"`
	Summary       string              `json:"summary"`
	CoverImage    string              `json:"coverImage"`
}

func (b createTripRequest) toTrip(owner string) domain.Trip {
	t := domain.Trip{
		OwnerID:     owner,
		Destination: b.Destination,
		TripName:    b.TripName,
		Summary:     b.Summary,
		CoverImage:  b.CoverImage,
	}
	if b.ArrivalDate != nil {
		t.ArrivalDate = b.ArrivalDate.Time
	}
	if b.DepartureDate != nil {
		t.DepartureDate = b.DepartureDate.Time
	}
	return t
}

// updateTripRequest is the PUT /trips/{tripID} body. Absent fields are left
// unchanged.
type updateTripRequest struct {
	Destination   *string             `json:"destination"`
	TripName      *string             `json:"tripName"`
	ArrivalDate   *openapi_types.Date `json:"arrivalDate"`
	DepartureDate *openapi_types.Date `json:"departureDate"`
	Summary       *string             `json:"summary"`
	CoverImage    *string             `json:"coverImage"`
}

func (b updateTripRequest) toUpdate() domain.TripUpdate {
	upd := domain.TripUpdate{
		Destination: b.Destination,
		TripName:    b.TripName,
		Summary:     b.Summary,
		CoverImage:  b.CoverImage,
	}
	if b.ArrivalDate != nil {
		d := b.ArrivalDate.Time
		upd.ArrivalDate = &d
	}
	if b.DepartureDate != nil {
		d := b.DepartureDate.Time
		upd.DepartureDate = &d
	}
	return upd
}

type tripResponse struct {
	ID            uuid.UUID          `json:"id"`
	Destination   string             `json:"destination"`
	TripName      string             `json:"tripName"`
	Summary       string             `json:"summary,omitempty"`
	CoverImage    string             `json:"coverImage,omitempty"`
	ArrivalDate   openapi_types.Date `json:"arrivalDate"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	Steps         []stepResponse     `json:"steps"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// tripToResponse converts a domain.Trip into its wire shape. The owner ID is
// deliberately not exposed — the caller already is the owner.
func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:            t.ID,
		Destination:   t.Destination,
		TripName:      t.TripName,
		Summary:       t.Summary,
		CoverImage:    t.CoverImage,
		ArrivalDate:   openapi_types.Date{Time: t.ArrivalDate},
		DepartureDate: openapi_types.Date{Time: t.DepartureDate},
		Steps:         make([]stepResponse, len(t.Steps)),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	for i, s := range t.Steps {
		resp.Steps[i] = stepToResponse(s)
	}
	return resp
}
