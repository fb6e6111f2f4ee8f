// Package repo contains all database access logic for the Adventure GO API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adventurego/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// A trip is stored as one row per aggregate with the embedded step list in a
// jsonb column, so every write replaces the whole document — last write wins,
// matching the aggregate-level read-modify-write contract.
//
// All single-read and write operations are scoped by owner ID in the SQL
// predicate itself: a trip owned by someone else is indistinguishable from a
// trip that does not exist.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by ID, scoped to the given owner.
	// Returns domain.ErrNotFound if no trip with that ID is owned by ownerID.
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns all trips owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip — the whole
	// embedded step list included — and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID is owned by trip.OwnerID.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID, scoped to the given owner. Embedded steps
	// and spots go with it. Returns domain.ErrNotFound if not owned/found.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, destination, trip_name, summary, cover_image,
		arrival_date, departure_date, steps, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, destination, trip_name, summary, cover_image,
		                   arrival_date, departure_date, steps)
		VALUES (@owner_id, @destination, @trip_name, @summary, @cover_image,
		        @arrival_date, @departure_date, @steps)
		RETURNING ` + tripColumns

	steps, err := marshalSteps(trip.Steps)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"owner_id":       trip.OwnerID,
		"destination":    trip.Destination,
		"trip_name":      trip.TripName,
		"summary":        trip.Summary,
		"cover_image":    trip.CoverImage,
		"arrival_date":   trip.ArrivalDate,
		"departure_date": trip.DepartureDate,
		"steps":          steps,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapDBErr(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to the owner.
func (r *pgTripRepo) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapDBErr(err))
	}
	return result, nil
}

// ListByOwner returns the owner's trips, newest first.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", mapDBErr(err))
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", mapDBErr(err))
	}

	return trips, nil
}

// Update overwrites the trip's mutable fields, steps included, in one write.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination    = @destination,
		    trip_name      = @trip_name,
		    summary        = @summary,
		    cover_image    = @cover_image,
		    arrival_date   = @arrival_date,
		    departure_date = @departure_date,
		    steps          = @steps,
		    updated_at     = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	steps, err := marshalSteps(trip.Steps)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	args := pgx.NamedArgs{
		"id":             trip.ID,
		"owner_id":       trip.OwnerID,
		"destination":    trip.Destination,
		"trip_name":      trip.TripName,
		"summary":        trip.Summary,
		"cover_image":    trip.CoverImage,
		"arrival_date":   trip.ArrivalDate,
		"departure_date": trip.DepartureDate,
		"steps":          steps,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapDBErr(err))
	}
	return result, nil
}

// Delete removes a trip by primary key, scoped to the owner.
func (r *pgTripRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", mapDBErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, date, and jsonb step-list conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		arrival   pgtype.Date
		departure pgtype.Date
		steps     []byte
	)

	err := s.Scan(&id, &t.OwnerID, &t.Destination, &t.TripName, &t.Summary,
		&t.CoverImage, &arrival, &departure, &steps, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.ArrivalDate = domain.NormalizeDate(arrival.Time)
	t.DepartureDate = domain.NormalizeDate(departure.Time)
	t.Steps, err = unmarshalSteps(steps)
	if err != nil {
		return domain.Trip{}, err
	}

	return t, nil
}

// --- step document mapping --------------------------------------------------

// stepDoc is the jsonb representation of a step. Dates are stored as plain
// YYYY-MM-DD strings, matching the wire format, so the stored document reads
// the same as the API payloads.
type stepDoc struct {
	Date     string    `json:"date"`
	Title    string    `json:"title"`
	Overview string    `json:"overview,omitempty"`
	Photos   []string  `json:"photos"`
	Spots    []spotDoc `json:"spots"`
}

type spotDoc struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SourceRef *refDoc   `json:"sourceRef,omitempty"`
	Note      string    `json:"note,omitempty"`
	Photo     string    `json:"photo,omitempty"`
}

type refDoc struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
}

func marshalSteps(steps []domain.Step) ([]byte, error) {
	docs := make([]stepDoc, len(steps))
	for i, s := range steps {
		doc := stepDoc{
			Date:     domain.DateKey(s.Date),
			Title:    s.Title,
			Overview: s.Overview,
			Photos:   s.Photos,
			Spots:    make([]spotDoc, len(s.Spots)),
		}
		if doc.Photos == nil {
			doc.Photos = []string{}
		}
		for j, sp := range s.Spots {
			doc.Spots[j] = spotDoc{
				ID:    sp.ID,
				Name:  sp.Name,
				Note:  sp.Note,
				Photo: sp.Photo,
			}
			if sp.SourceRef != nil {
				doc.Spots[j].SourceRef = &refDoc{
					Provider:   sp.SourceRef.Provider,
					ProviderID: sp.SourceRef.ProviderID,
				}
			}
		}
		docs[i] = doc
	}
	return json.Marshal(docs)
}

func unmarshalSteps(raw []byte) ([]domain.Step, error) {
	var docs []stepDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}

	steps := make([]domain.Step, len(docs))
	for i, doc := range docs {
		date, err := domain.ParseDate(doc.Date)
		if err != nil {
			return nil, fmt.Errorf("decode steps: %w", err)
		}
		step := domain.Step{
			Date:     date,
			Title:    doc.Title,
			Overview: doc.Overview,
			Photos:   doc.Photos,
			Spots:    make([]domain.Spot, len(doc.Spots)),
		}
		if step.Photos == nil {
			step.Photos = []string{}
		}
		for j, sp := range doc.Spots {
			step.Spots[j] = domain.Spot{
				ID:    sp.ID,
				Name:  sp.Name,
				Note:  sp.Note,
				Photo: sp.Photo,
			}
			if sp.SourceRef != nil {
				step.Spots[j].SourceRef = &domain.PlaceRef{
					Provider:   sp.SourceRef.Provider,
					ProviderID: sp.SourceRef.ProviderID,
				}
			}
		}
		steps[i] = step
	}
	return steps, nil
}
