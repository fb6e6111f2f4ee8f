package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/repo"
)

// Allocation tuning. randomDrawAttempts bounds the optimistic phase before
// the allocator falls back to a deterministic scan; allocationAttempts bounds
// how many times a whole allocation is retried after losing the insert race.
const (
	randomDrawAttempts = 25
	allocationAttempts = 5
)

// QueryService accepts support-query submissions and assigns each one a small
// unique query number.
//
// Allocation is optimistic: pick a free-looking number, insert, and let the
// database's unique constraint arbitrate. A check-then-insert without the
// constraint would be a race under concurrent submissions — two requests can
// both see a number as free — so a duplicate-key insert is an expected
// outcome, answered by re-running the whole allocation.
type QueryService struct {
	queries repo.QueryRepo
}

// NewQueryService constructs a QueryService backed by the provided QueryRepo.
func NewQueryService(queries repo.QueryRepo) *QueryService {
	return &QueryService{queries: queries}
}

// Submit validates the submission, allocates a query number, and persists the
// record. Returns domain.ErrValidation for missing email/message or an
// over-length message, domain.ErrRangeExhausted when every number is taken,
// and domain.ErrAllocationFailed when the insert race is lost too many times.
func (s *QueryService) Submit(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error) {
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	rec.Message = strings.TrimSpace(rec.Message)

	if rec.Email == "" {
		return domain.QueryRecord{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if rec.Message == "" {
		return domain.QueryRecord{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(rec.Message) > domain.MaxQueryMessageLen {
		return domain.QueryRecord{}, fmt.Errorf("%w: message must be %d characters or less",
			domain.ErrValidation, domain.MaxQueryMessageLen)
	}

	var created domain.QueryRecord
	backoff := retry.WithMaxRetries(allocationAttempts-1, retry.NewConstant(20*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		n, err := s.pickNumber(ctx)
		if err != nil {
			return err // exhaustion and repo failures are not retryable
		}
		rec.QueryNumber = n

		got, err := s.queries.Create(ctx, rec)
		if errors.Is(err, repo.ErrDuplicateQueryNumber) {
			// Lost the race to a concurrent submission — pick again.
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		created = got
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateQueryNumber) {
			return domain.QueryRecord{}, fmt.Errorf("service.QueryService.Submit: %w", domain.ErrAllocationFailed)
		}
		return domain.QueryRecord{}, fmt.Errorf("service.QueryService.Submit: %w", err)
	}
	return created, nil
}

// pickNumber proposes a query number that looked free at the time of the
// check. Random draws first — cheap and collision-free while the range is
// sparse — then a deterministic scan for the first unused number once the
// draws keep hitting taken ones.
func (s *QueryService) pickNumber(ctx context.Context) (int, error) {
	for i := 0; i < randomDrawAttempts; i++ {
		n := rand.IntN(domain.QueryNumberMax-domain.QueryNumberMin+1) + domain.QueryNumberMin
		exists, err := s.queries.NumberExists(ctx, n)
		if err != nil {
			return 0, err
		}
		if !exists {
			return n, nil
		}
	}

	used, err := s.queries.UsedNumbers(ctx)
	if err != nil {
		return 0, err
	}
	taken := make(map[int]bool, len(used))
	for _, n := range used {
		taken[n] = true
	}
	for n := domain.QueryNumberMin; n <= domain.QueryNumberMax; n++ {
		if !taken[n] {
			return n, nil
		}
	}
	return 0, fmt.Errorf("no free numbers in %d..%d: %w",
		domain.QueryNumberMin, domain.QueryNumberMax, domain.ErrRangeExhausted)
}
