package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is owned by a different account.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when a trip's departure date precedes its
// arrival date. Handlers should map this to HTTP 400.
var ErrInvalidRange = errors.New("departure date before arrival date")

// ErrDateOutOfRange is returned when a step date falls outside the parent
// trip's arrival..departure range. Handlers should map this to HTTP 400.
var ErrDateOutOfRange = errors.New("date outside trip range")

// ErrRangeExhausted is returned by the query-number allocator when every
// number in the configured range is already taken.
// Handlers should map this to HTTP 500; it is operator-visible and expected
// to be exceedingly rare.
var ErrRangeExhausted = errors.New("query number range exhausted")

// ErrAllocationFailed is returned by the query-number allocator when it keeps
// losing the insert race after exhausting its retry budget.
// Handlers should map this to HTTP 500.
var ErrAllocationFailed = errors.New("query number allocation failed")

// ErrUnavailable is returned when a downstream dependency (database, place
// lookup) times out or is unreachable. The operation is safe to retry.
// Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("temporarily unavailable")
