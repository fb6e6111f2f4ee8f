package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/repo"
	"github.com/adventurego/backend/testutil"
)

// newTestQueryRepo mirrors newTestTripRepo: one rolled-back transaction per test.
func newTestQueryRepo(t *testing.T) repo.QueryRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewQueryRepo(tx)
}

func queryFixture(n int) domain.QueryRecord {
	return domain.QueryRecord{
		QueryNumber: n,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Message:     "When is the best season for the Pyrenees?",
	}
}

func TestQueryRepo_Create(t *testing.T) {
	r := newTestQueryRepo(t)
	ctx := context.Background()

	got, err := r.Create(ctx, queryFixture(7))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 7, got.QueryNumber)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestQueryRepo_Create_DuplicateNumber(t *testing.T) {
	r := newTestQueryRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, queryFixture(7))
	require.NoError(t, err)

	// Same number again — the unique constraint is the arbiter.
	_, err = r.Create(ctx, queryFixture(7))

	assert.ErrorIs(t, err, repo.ErrDuplicateQueryNumber)
}

func TestQueryRepo_Create_NumberOutOfRange(t *testing.T) {
	r := newTestQueryRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, queryFixture(domain.QueryNumberMax+1))

	// Rejected by the range CHECK constraint, not mapped to a sentinel —
	// the allocator never proposes out-of-range numbers.
	assert.Error(t, err)
}

func TestQueryRepo_NumberExists(t *testing.T) {
	r := newTestQueryRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, queryFixture(42))
	require.NoError(t, err)

	exists, err := r.NumberExists(ctx, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.NumberExists(ctx, 43)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestQueryRepo_UsedNumbers(t *testing.T) {
	r := newTestQueryRepo(t)
	ctx := context.Background()

	for _, n := range []int{5, 1, 9} {
		_, err := r.Create(ctx, queryFixture(n))
		require.NoError(t, err)
	}

	used, err := r.UsedNumbers(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 9}, used, "used numbers come back sorted")
}

func TestQueryRepo_UsedNumbers_Empty(t *testing.T) {
	r := newTestQueryRepo(t)
	ctx := context.Background()

	used, err := r.UsedNumbers(ctx)

	require.NoError(t, err)
	assert.Empty(t, used)
}
