package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adventurego/backend/internal/domain"
)

// ErrDuplicateQueryNumber is returned by QueryRepo.Create when the chosen
// query number lost the insert race against a concurrent submission. The
// allocator treats it as a signal to pick again.
var ErrDuplicateQueryNumber = errors.New("query number already taken")

// uniqueViolation is the SQLSTATE Postgres reports when an insert breaks a
// unique constraint.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint. An empty constraint matches any.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// mapDBErr translates transport-level database failures into
// domain.ErrUnavailable so callers can retry safely. Context timeouts and
// network timeouts both qualify; everything else passes through unchanged.
func mapDBErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	case pgconn.Timeout(err):
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	default:
		return err
	}
}
