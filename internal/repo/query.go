package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adventurego/backend/internal/domain"
)

// QueryRepo defines the persistence operations for support-query records.
//
// The queries table carries a UNIQUE constraint on query_number. That
// constraint — not the NumberExists pre-check — is what guarantees global
// uniqueness: two concurrent allocations can both pass the existence check,
// but only one insert wins, and the loser gets ErrDuplicateQueryNumber.
type QueryRepo interface {
	// Create inserts a new query record and returns the persisted row.
	// Returns ErrDuplicateQueryNumber if rec.QueryNumber is already taken.
	Create(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error)

	// NumberExists reports whether a query number is already assigned.
	NumberExists(ctx context.Context, n int) (bool, error)

	// UsedNumbers returns every assigned query number, for the allocator's
	// deterministic fallback scan.
	UsedNumbers(ctx context.Context) ([]int, error)
}

// pgQueryRepo is the Postgres implementation of QueryRepo.
type pgQueryRepo struct {
	db db
}

// NewQueryRepo constructs a QueryRepo backed by the provided db connection.
func NewQueryRepo(db db) QueryRepo {
	return &pgQueryRepo{db: db}
}

func (r *pgQueryRepo) Create(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error) {
	const q = `
		INSERT INTO queries (query_number, first_name, last_name, email, phone, message)
		VALUES (@query_number, @first_name, @last_name, @email, @phone, @message)
		RETURNING id, query_number, first_name, last_name, email, phone, message, created_at`

	args := pgx.NamedArgs{
		"query_number": rec.QueryNumber,
		"first_name":   rec.FirstName,
		"last_name":    rec.LastName,
		"email":        rec.Email,
		"phone":        rec.Phone,
		"message":      rec.Message,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanQuery(row)
	if err != nil {
		if isUniqueViolation(err, "queries_query_number_key") {
			return domain.QueryRecord{}, fmt.Errorf("repo.QueryRepo.Create: %w", ErrDuplicateQueryNumber)
		}
		return domain.QueryRecord{}, fmt.Errorf("repo.QueryRepo.Create: %w", mapDBErr(err))
	}
	return result, nil
}

func (r *pgQueryRepo) NumberExists(ctx context.Context, n int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM queries WHERE query_number = @n)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"n": n}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.QueryRepo.NumberExists: %w", mapDBErr(err))
	}
	return exists, nil
}

func (r *pgQueryRepo) UsedNumbers(ctx context.Context) ([]int, error) {
	const q = `SELECT query_number FROM queries ORDER BY query_number`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.QueryRepo.UsedNumbers: %w", mapDBErr(err))
	}
	defer rows.Close()

	var used []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("repo.QueryRepo.UsedNumbers: scan: %w", err)
		}
		used = append(used, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QueryRepo.UsedNumbers: rows: %w", mapDBErr(err))
	}
	return used, nil
}

// scanQuery maps a single database row into a domain.QueryRecord.
func scanQuery(s scanner) (domain.QueryRecord, error) {
	var (
		rec domain.QueryRecord
		id  pgtype.UUID
	)
	err := s.Scan(&id, &rec.QueryNumber, &rec.FirstName, &rec.LastName,
		&rec.Email, &rec.Phone, &rec.Message, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QueryRecord{}, domain.ErrNotFound
		}
		return domain.QueryRecord{}, err
	}
	rec.ID = uuid.UUID(id.Bytes)
	return rec, nil
}
