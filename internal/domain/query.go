package domain

import (
	"time"

	"github.com/google/uuid"
)

// Query number allocation bounds. Numbers are drawn from 1..QueryNumberMax
// and are unique across all query records ever created, not per user.
const (
	QueryNumberMin = 1
	QueryNumberMax = 1000
)

// MaxQueryMessageLen caps the free-text message of a support query.
const MaxQueryMessageLen = 250

// QueryRecord is a support/contact submission. The QueryNumber is the small
// human-facing identifier quoted in follow-up correspondence; it is assigned
// by the allocator, never by the caller.
type QueryRecord struct {
	ID          uuid.UUID `json:"id"`
	QueryNumber int       `json:"queryNumber"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
