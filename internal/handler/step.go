package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/middleware"
)

// UpsertStep handles POST /trips/{tripID}/steps.
// A step already recorded for the same date is replaced wholesale; the
// response carries the whole updated trip.
func (s *Server) UpsertStep(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}
	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	var body stepRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	if body.Date == "" {
		badRequest(w, "date and title are required")
		return
	}

	step, err := body.toStep()
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	updated, err := s.steps.UpsertStep(r.Context(), owner, tripID, step)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteStep handles DELETE /trips/{tripID}/steps?date=YYYY-MM-DD.
// Deleting a date with no step is a no-op — the trip still comes back 200 —
// so a client can retry without knowing server state.
func (s *Server) DeleteStep(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}
	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		badRequest(w, "date query parameter is required")
		return
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	updated, err := s.steps.DeleteStep(r.Context(), owner, tripID, date)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// ListTripDays handles GET /trips/{tripID}/days: the trip's full date range,
// one entry per calendar day, with the step attached where one exists.
func (s *Server) ListTripDays(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no caller identity")
		return
	}
	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	days, err := s.steps.Days(r.Context(), owner, tripID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	data := make([]dayResponse, len(days))
	for i, d := range days {
		data[i] = dayResponse{Date: openapi_types.Date{Time: d.Date}}
		if d.Step != nil {
			step := stepToResponse(*d.Step)
			data[i].Step = &step
		}
	}
	writeJSON(w, http.StatusOK, data)
}

// --- request/response shapes ------------------------------------------------

// stepRequest is the POST /trips/{tripID}/steps body. The date is accepted as
// a plain YYYY-MM-DD string or a full timestamp; either way it is normalized
// to its calendar date before use.
type stepRequest struct {
	Date     string        `json:"date"`
	Title    string        `json:"title"`
	Overview string        `json:"overview"`
	Photos   []string      `json:"photos"`
	Spots    []spotPayload `json:"spots"`
}

func (b stepRequest) toStep() (domain.Step, error) {
	date, err := domain.ParseDate(b.Date)
	if err != nil {
		return domain.Step{}, err
	}
	step := domain.Step{
		Date:     date,
		Title:    b.Title,
		Overview: b.Overview,
		Photos:   b.Photos,
		Spots:    make([]domain.Spot, len(b.Spots)),
	}
	for i, sp := range b.Spots {
		step.Spots[i] = sp.toSpot()
	}
	return step, nil
}

// spotPayload is a spot as it appears inside a step upsert body. A client
// re-submitting an existing step keeps the spot IDs it was given; new spots
// come without one.
type spotPayload struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	SourceRef *domain.PlaceRef `json:"sourceRef"`
	Note      string           `json:"note"`
	Photo     string           `json:"photo"`
}

func (p spotPayload) toSpot() domain.Spot {
	return domain.Spot{
		ID:        p.ID,
		Name:      p.Name,
		SourceRef: p.SourceRef,
		Note:      p.Note,
		Photo:     p.Photo,
	}
}

type stepResponse struct {
	Date     openapi_types.Date `json:"date"`
	Title    string             `json:"title"`
	Overview string             `json:"overview,omitempty"`
	Photos   []string           `json:"photos"`
	Spots    []spotResponse     `json:"spots"`
}

type spotResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	SourceRef *domain.PlaceRef `json:"sourceRef,omitempty"`
	Note      string           `json:"note,omitempty"`
	Photo     string           `json:"photo,omitempty"`
}

type dayResponse struct {
	Date openapi_types.Date `json:"date"`
	Step *stepResponse      `json:"step,omitempty"`
}

func stepToResponse(s domain.Step) stepResponse {
	resp := stepResponse{
		Date:     openapi_types.Date{Time: s.Date},
		Title:    s.Title,
		Overview: s.Overview,
		Photos:   s.Photos,
		Spots:    make([]spotResponse, len(s.Spots)),
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	for i, sp := range s.Spots {
		resp.Spots[i] = spotResponse{
			ID:        sp.ID,
			Name:      sp.Name,
			SourceRef: sp.SourceRef,
			Note:      sp.Note,
			Photo:     sp.Photo,
		}
	}
	return resp
}
