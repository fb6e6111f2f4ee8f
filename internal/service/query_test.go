package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/repo"
	"github.com/adventurego/backend/internal/service"
)

// memQueryRepo is an in-memory QueryRepo that enforces query-number
// uniqueness under a mutex, mimicking the database's unique constraint. It is
// safe for concurrent use so allocation tests can hammer it from goroutines.
type memQueryRepo struct {
	mu    sync.Mutex
	taken map[int]bool

	// prefill marks numbers as used without a record, for exhaustion tests.
	// failCreates makes the first N Create calls lose the insert race even
	// when NumberExists said the number was free.
	failCreates int
}

func newMemQueryRepo() *memQueryRepo {
	return &memQueryRepo{taken: make(map[int]bool)}
}

func (m *memQueryRepo) Create(_ context.Context, rec domain.QueryRecord) (domain.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreates > 0 {
		m.failCreates--
		return domain.QueryRecord{}, repo.ErrDuplicateQueryNumber
	}
	if m.taken[rec.QueryNumber] {
		return domain.QueryRecord{}, repo.ErrDuplicateQueryNumber
	}
	m.taken[rec.QueryNumber] = true
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	return rec, nil
}

func (m *memQueryRepo) NumberExists(_ context.Context, n int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taken[n], nil
}

func (m *memQueryRepo) UsedNumbers(_ context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	used := make([]int, 0, len(m.taken))
	for n := range m.taken {
		used = append(used, n)
	}
	return used, nil
}

var _ repo.QueryRepo = (*memQueryRepo)(nil)

func validQuery() domain.QueryRecord {
	return domain.QueryRecord{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Message:   "When is the best season for the Pyrenees?",
	}
}

// ---- validation ------------------------------------------------------------

func TestQueryService_Submit_Valid(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	got, err := svc.Submit(context.Background(), validQuery())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.QueryNumber, domain.QueryNumberMin)
	assert.LessOrEqual(t, got.QueryNumber, domain.QueryNumberMax)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestQueryService_Submit_NormalizesEmail(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Email = "  Ada@Example.COM  "

	got, err := svc.Submit(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestQueryService_Submit_TrimsMessage(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Message = "  hello  "

	got, err := svc.Submit(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, "hello", got.Message)
}

func TestQueryService_Submit_MissingEmail(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Email = "   "

	_, err := svc.Submit(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQueryService_Submit_MissingMessage(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Message = ""

	_, err := svc.Submit(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQueryService_Submit_MessageTooLong(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Message = strings.Repeat("x", domain.MaxQueryMessageLen+1)

	_, err := svc.Submit(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQueryService_Submit_MessageAtLimit(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Message = strings.Repeat("x", domain.MaxQueryMessageLen)

	_, err := svc.Submit(context.Background(), rec)

	assert.NoError(t, err)
}

func TestQueryService_Submit_MultibyteMessageWithinLimit(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	// 200 characters but 600 bytes — the cap counts characters, not bytes.
	rec.Message = strings.Repeat("あ", 200)

	_, err := svc.Submit(context.Background(), rec)

	assert.NoError(t, err)
}

func TestQueryService_Submit_MultibyteMessageTooLong(t *testing.T) {
	svc := service.NewQueryService(newMemQueryRepo())

	rec := validQuery()
	rec.Message = strings.Repeat("あ", domain.MaxQueryMessageLen+1)

	_, err := svc.Submit(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- allocation ------------------------------------------------------------

func TestQueryService_Submit_RetriesLostInsertRace(t *testing.T) {
	r := newMemQueryRepo()
	r.failCreates = 2 // lose the race twice, then succeed
	svc := service.NewQueryService(r)

	got, err := svc.Submit(context.Background(), validQuery())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.QueryNumber, domain.QueryNumberMin)
}

func TestQueryService_Submit_AllocationFailedAfterRepeatedRaces(t *testing.T) {
	r := newMemQueryRepo()
	r.failCreates = 1000 // every attempt loses the race
	svc := service.NewQueryService(r)

	_, err := svc.Submit(context.Background(), validQuery())

	assert.ErrorIs(t, err, domain.ErrAllocationFailed)
}

func TestQueryService_Submit_FallbackScanWhenRangeNearlyFull(t *testing.T) {
	r := newMemQueryRepo()
	// Every number taken except one: random draws will almost surely miss it,
	// forcing the deterministic scan to find the single free slot.
	for n := domain.QueryNumberMin; n <= domain.QueryNumberMax; n++ {
		if n != 500 {
			r.taken[n] = true
		}
	}
	svc := service.NewQueryService(r)

	got, err := svc.Submit(context.Background(), validQuery())

	require.NoError(t, err)
	assert.Equal(t, 500, got.QueryNumber)
}

func TestQueryService_Submit_RangeExhausted(t *testing.T) {
	r := newMemQueryRepo()
	for n := domain.QueryNumberMin; n <= domain.QueryNumberMax; n++ {
		r.taken[n] = true
	}
	svc := service.NewQueryService(r)

	_, err := svc.Submit(context.Background(), validQuery())

	assert.ErrorIs(t, err, domain.ErrRangeExhausted)
}

func TestQueryService_Submit_ConcurrentSubmissionsGetUniqueNumbers(t *testing.T) {
	r := newMemQueryRepo()
	svc := service.NewQueryService(r)

	const submissions = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[int]int)
	)
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Submit(context.Background(), validQuery())
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			numbers[got.QueryNumber]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, submissions)
	for n, count := range numbers {
		assert.Equal(t, 1, count, "query number %d assigned more than once", n)
	}
}

func TestQueryService_Submit_ConcurrentSaturation(t *testing.T) {
	// Exactly as many concurrent submissions as free numbers. The random draws
	// almost always hit taken numbers here, so every submission goes through
	// the contended fallback-scan + retry path — and all must still land on a
	// distinct number with none failing.
	const submissions = 50

	r := newMemQueryRepo()
	for n := domain.QueryNumberMin; n <= domain.QueryNumberMax-submissions; n++ {
		r.taken[n] = true
	}
	svc := service.NewQueryService(r)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[int]int)
	)
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Submit(context.Background(), validQuery())
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			numbers[got.QueryNumber]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, submissions)
	for n, count := range numbers {
		assert.Equal(t, 1, count, "query number %d assigned more than once", n)
		assert.Greater(t, n, domain.QueryNumberMax-submissions, "number %d was already taken", n)
	}
}
