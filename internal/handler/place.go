package handler

import "net/http"

// SearchPlaces handles GET /places?q= — the spot-search passthrough to the
// place-lookup collaborator. Provider failures surface as 503 so the UI can
// offer a retry instead of showing an empty result list.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.places.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
