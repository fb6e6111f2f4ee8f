package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for all calendar dates.
const DateLayout = "2006-01-02"

// NormalizeDate truncates any timestamp to its calendar date at UTC midnight.
// All step and trip dates are normalized on the way in, so comparisons never
// see time-of-day or timezone components.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date from its wire representation. Plain
// YYYY-MM-DD strings are the canonical form; full RFC 3339 timestamps are
// accepted and truncated to their calendar date, so a client sending
// "2025-06-02T14:30:00Z" addresses the same day as "2025-06-02".
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NormalizeDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, s)
}

// DateKey returns the normalized YYYY-MM-DD key for a date. Steps are keyed
// by this value inside a trip.
func DateKey(t time.Time) string {
	return NormalizeDate(t).Format(DateLayout)
}

// DaysInRange returns every calendar date from arrival to departure inclusive,
// ascending. The walk uses calendar-day arithmetic (AddDate), not elapsed-time
// arithmetic, so daylight-saving transitions cannot skip or repeat a day.
// Returns ErrInvalidRange when departure precedes arrival.
//
// The slice is fully materialized; trip lengths are bounded by realistic
// travel durations, so there is nothing to gain from a lazy sequence.
func DaysInRange(arrival, departure time.Time) ([]time.Time, error) {
	start := NormalizeDate(arrival)
	end := NormalizeDate(departure)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, DateKey(start), DateKey(end))
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// Day pairs one calendar date of a trip with its step, if any.
type Day struct {
	Date time.Time `json:"date"`
	Step *Step     `json:"step,omitempty"`
}

// Timeline is the day-by-day view of one trip's steps. Internally it keys
// steps by normalized date, which makes the "at most one step per date"
// invariant structural; externally it exposes steps in insertion order.
//
// Timeline operates on a copy of the trip's step list — callers apply the
// result by writing Steps() back into the aggregate (see UpsertStep).
type Timeline struct {
	arrival   time.Time
	departure time.Time
	order     []string
	steps     map[string]Step
}

// NewTimeline builds a timeline over the trip's date range and current steps.
// Step dates are normalized as they are loaded; if the stored list somehow
// contains two steps for one date, the later entry wins.
func NewTimeline(trip Trip) *Timeline {
	tl := &Timeline{
		arrival:   NormalizeDate(trip.ArrivalDate),
		departure: NormalizeDate(trip.DepartureDate),
		steps:     make(map[string]Step, len(trip.Steps)),
	}
	for _, s := range trip.Steps {
		s.Date = NormalizeDate(s.Date)
		key := DateKey(s.Date)
		if _, seen := tl.steps[key]; !seen {
			tl.order = append(tl.order, key)
		}
		tl.steps[key] = s
	}
	return tl
}

// StepFor returns the step recorded for the given date, if any.
func (tl *Timeline) StepFor(date time.Time) (Step, bool) {
	s, ok := tl.steps[DateKey(date)]
	return s, ok
}

// Upsert records a step for its date. An existing step for that date is fully
// replaced — not merged — keeping its position in the sequence; otherwise the
// step is appended. Returns ErrDateOutOfRange when the date falls outside the
// trip's arrival..departure range.
func (tl *Timeline) Upsert(step Step) error {
	step.Date = NormalizeDate(step.Date)
	if step.Date.Before(tl.arrival) || step.Date.After(tl.departure) {
		return fmt.Errorf("%w: %s not in %s..%s",
			ErrDateOutOfRange, DateKey(step.Date), DateKey(tl.arrival), DateKey(tl.departure))
	}

	key := DateKey(step.Date)
	if _, exists := tl.steps[key]; !exists {
		tl.order = append(tl.order, key)
	}
	tl.steps[key] = step
	return nil
}

// Delete removes the step for the given date. Deleting a date with no step is
// a no-op, so a client can retry a delete without knowing server state.
func (tl *Timeline) Delete(date time.Time) {
	key := DateKey(date)
	if _, ok := tl.steps[key]; !ok {
		return
	}
	delete(tl.steps, key)
	for i, k := range tl.order {
		if k == key {
			tl.order = append(tl.order[:i], tl.order[i+1:]...)
			break
		}
	}
}

// Steps returns the steps in insertion order, ready to be written back into
// the trip aggregate. Always non-nil.
func (tl *Timeline) Steps() []Step {
	out := make([]Step, 0, len(tl.order))
	for _, key := range tl.order {
		out = append(out, tl.steps[key])
	}
	return out
}

// Days returns one entry per calendar date of the trip, ascending, each
// carrying its step when one exists. Days without a step have a nil Step —
// the range is addressable but not required to be dense.
func (tl *Timeline) Days() []Day {
	dates, err := DaysInRange(tl.arrival, tl.departure)
	if err != nil {
		// The trip's range was validated at create/update time; an inverted
		// range here means corrupted storage, and an empty view is the most
		// useful answer.
		return []Day{}
	}
	days := make([]Day, len(dates))
	for i, d := range dates {
		days[i] = Day{Date: d}
		if s, ok := tl.steps[DateKey(d)]; ok {
			step := s
			days[i].Step = &step
		}
	}
	return days
}

// StepForDate looks up the trip's step for a calendar date.
func StepForDate(trip Trip, date time.Time) (Step, bool) {
	return NewTimeline(trip).StepFor(date)
}

// UpsertStep returns a copy of the trip with the step recorded for its date,
// replacing any previous step on that date. The whole trip goes in and the
// whole trip comes out, so callers never hand-merge partial state.
func UpsertStep(trip Trip, step Step) (Trip, error) {
	tl := NewTimeline(trip)
	if err := tl.Upsert(step); err != nil {
		return Trip{}, err
	}
	trip.Steps = tl.Steps()
	return trip, nil
}

// DeleteStep returns a copy of the trip without the step for the given date.
// A date with no step leaves the trip unchanged.
func DeleteStep(trip Trip, date time.Time) Trip {
	tl := NewTimeline(trip)
	tl.Delete(date)
	trip.Steps = tl.Steps()
	return trip
}
