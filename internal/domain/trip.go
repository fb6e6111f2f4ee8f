// Package domain contains the core data types and trip-timeline rules for the
// Adventure GO API. This package has no dependency on the database or HTTP
// layers and is imported by every other internal package (repo, service,
// handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the aggregate root of the travel journal. Steps and their spots are
// embedded in the trip document and share its lifecycle — deleting a trip
// deletes everything inside it. Every operation on a trip is scoped to the
// owning account.
type Trip struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Destination   string    `json:"destination"`
	TripName      string    `json:"tripName"`
	Summary       string    `json:"summary,omitempty"`
	CoverImage    string    `json:"coverImage,omitempty"`
	ArrivalDate   time.Time `json:"arrivalDate"`   // calendar date, UTC midnight
	DepartureDate time.Time `json:"departureDate"` // calendar date, UTC midnight
	Steps         []Step    `json:"steps"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Step is one calendar day's journal entry within a trip. The date is the
// step's natural key: a trip holds at most one step per date, and upserting a
// step for an existing date replaces the previous entry wholesale.
type Step struct {
	Date     time.Time `json:"date"`
	Title    string    `json:"title"`
	Overview string    `json:"overview,omitempty"`
	Photos   []string  `json:"photos"` // opaque image references (data URIs or blob URLs)
	Spots    []Spot    `json:"spots"`
}

// Spot is a point of interest attached to a step. The ID is minted when the
// spot is first added and stays stable across edits.
type Spot struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SourceRef *PlaceRef `json:"sourceRef,omitempty"`
	Note      string    `json:"note,omitempty"`
	Photo     string    `json:"photo,omitempty"`
}

// TripUpdate carries the optional top-level fields of a trip update.
// Nil pointers mean "leave unchanged". There is deliberately no Steps field:
// the step list is only writable through the timeline operations.
type TripUpdate struct {
	Destination   *string
	TripName      *string
	Summary       *string
	CoverImage    *string
	ArrivalDate   *time.Time
	DepartureDate *time.Time
}

// PlaceRef points back at the place-lookup result a spot was created from.
// It is used only to detect duplicate picks of the same place, never to
// re-fetch provider data.
type PlaceRef struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
}

// Equal reports whether two refs identify the same provider place.
func (r PlaceRef) Equal(other PlaceRef) bool {
	return r.Provider == other.Provider && r.ProviderID == other.ProviderID
}
