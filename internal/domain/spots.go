package domain

import (
	"strings"

	"github.com/google/uuid"
)

// AddOrUpdateSpot maintains one step's spot list.
//
// When editingID matches an existing spot, that spot is replaced in place and
// keeps its position and ID. Otherwise the candidate is appended, minting an
// ID if it does not carry one — unless it duplicates an existing spot, in
// which case the list is returned unchanged. Two spots are duplicates when their source
// refs identify the same provider place, or their names match
// case-insensitively.
//
// Duplicates are a silent no-op rather than an error: candidates typically
// arrive from a place-search UI the user might click twice, and the second
// click should not interrupt the flow.
func AddOrUpdateSpot(spots []Spot, candidate Spot, editingID uuid.UUID) []Spot {
	if editingID != uuid.Nil {
		for i, s := range spots {
			if s.ID == editingID {
				candidate.ID = editingID
				out := make([]Spot, len(spots))
				copy(out, spots)
				out[i] = candidate
				return out
			}
		}
	}

	for _, s := range spots {
		if s.SourceRef != nil && candidate.SourceRef != nil && s.SourceRef.Equal(*candidate.SourceRef) {
			return spots
		}
		if strings.EqualFold(s.Name, candidate.Name) {
			return spots
		}
	}

	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	out := make([]Spot, 0, len(spots)+1)
	out = append(out, spots...)
	return append(out, candidate)
}

// RemoveSpot removes the spot with the given ID from the list. Removing an
// absent ID is a no-op.
func RemoveSpot(spots []Spot, id uuid.UUID) []Spot {
	for i, s := range spots {
		if s.ID == id {
			out := make([]Spot, 0, len(spots)-1)
			out = append(out, spots[:i]...)
			return append(out, spots[i+1:]...)
		}
	}
	return spots
}

// SanitizeSpots rebuilds a client-supplied spot list through the same
// add-or-update rules used for single inserts: IDs are minted where missing,
// duplicate source refs and case-insensitive duplicate names are collapsed,
// first occurrence wins. Step upserts run their payload's spots through this
// so a full-step write cannot smuggle in duplicates.
func SanitizeSpots(spots []Spot) []Spot {
	out := []Spot{}
	for _, s := range spots {
		out = AddOrUpdateSpot(out, s, s.ID)
	}
	return out
}
