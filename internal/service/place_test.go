package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/service"
)

// mockLookup is a function-valued test double for service.PlaceLookup.
type mockLookup func(ctx context.Context, query string) ([]domain.PlaceCandidate, error)

func (m mockLookup) Search(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	return m(ctx, query)
}

func TestPlaceService_Search(t *testing.T) {
	want := []domain.PlaceCandidate{{
		Name:       "Sagrada Família",
		Latitude:   41.4036,
		Longitude:  2.1744,
		Provider:   "nominatim",
		ProviderID: "way/5414364",
	}}
	svc := service.NewPlaceService(mockLookup(func(_ context.Context, query string) ([]domain.PlaceCandidate, error) {
		assert.Equal(t, "sagrada familia", query)
		return want, nil
	}))

	got, err := svc.Search(context.Background(), "sagrada familia")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlaceService_Search_EmptyQuery(t *testing.T) {
	svc := service.NewPlaceService(mockLookup(func(_ context.Context, _ string) ([]domain.PlaceCandidate, error) {
		t.Fatal("lookup should not be called for an empty query")
		return nil, nil
	}))

	_, err := svc.Search(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceService_Search_NoResults(t *testing.T) {
	svc := service.NewPlaceService(mockLookup(func(_ context.Context, _ string) ([]domain.PlaceCandidate, error) {
		return nil, nil
	}))

	got, err := svc.Search(context.Background(), "nowhere in particular")

	require.NoError(t, err)
	// Empty slice, not nil — the handler serializes it as [].
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPlaceService_Search_ProviderUnavailable(t *testing.T) {
	svc := service.NewPlaceService(mockLookup(func(_ context.Context, _ string) ([]domain.PlaceCandidate, error) {
		return nil, domain.ErrUnavailable
	}))

	_, err := svc.Search(context.Background(), "barcelona")

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
