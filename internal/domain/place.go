package domain

// PlaceCandidate is one result of a free-text place search, as returned by
// the external place-lookup collaborator. The core only consumes this shape;
// how the provider produces it is not our concern.
type PlaceCandidate struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	Provider   string  `json:"provider"`
	ProviderID string  `json:"providerId"`
}

// Ref returns the reference stored on a spot created from this candidate.
func (c PlaceCandidate) Ref() PlaceRef {
	return PlaceRef{Provider: c.Provider, ProviderID: c.ProviderID}
}
