package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/middleware"
)

// AddOrUpdateSpot handles POST /trips/{tripID}/steps/{date}/spots.
// Without editingId the spot is appended, unless it duplicates an existing
// one — the duplicate case is a silent no-op and still returns 200 with the
// unchanged trip. With editingId the matching spot is replaced in place.
func (s *Server) AddOrUpdateSpot(w http.ResponseWriter, r *http.Request) {
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
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var body spotRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	editingID := uuid.Nil
	if body.EditingID != nil {
		editingID = *body.EditingID
	}

	updated, err := s.steps.AddOrUpdateSpot(r.Context(), owner, tripID, date, body.toSpot(), editingID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// RemoveSpot handles DELETE /trips/{tripID}/steps/{date}/spots/{spotID}.
// An absent spot ID is a no-op; the trip still comes back 200.
func (s *Server) RemoveSpot(w http.ResponseWriter, r *http.Request) {
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
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	spotID, err := uuid.Parse(chi.URLParam(r, "spotID"))
	if err != nil {
		badRequest(w, "invalid spot id")
		return
	}

	updated, err := s.steps.RemoveSpot(r.Context(), owner, tripID, date, spotID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// spotRequest is the POST .../spots body.
type spotRequest struct {
	Name      string           `json:"name"`
	SourceRef *domain.PlaceRef `json:"sourceRef"`
	Note      string           `json:"note"`
	Photo     string           `json:"photo"`
	EditingID *uuid.UUID       `json:"editingId"`
}

func (b spotRequest) toSpot() domain.Spot {
	return domain.Spot{
		Name:      b.Name,
		SourceRef: b.SourceRef,
		Note:      b.Note,
		Photo:     b.Photo,
	}
}
