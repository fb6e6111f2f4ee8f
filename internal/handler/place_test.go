package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventurego/backend/internal/domain"
	"github.com/adventurego/backend/internal/handler"
)

// mockPlaceServicer is a test double for handler.PlaceServicer.
type mockPlaceServicer struct {
	search func(ctx context.Context, query string) ([]domain.PlaceCandidate, error)
}

func (m *mockPlaceServicer) Search(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	return m.search(ctx, query)
}

var _ handler.PlaceServicer = (*mockPlaceServicer)(nil)

func TestSearchPlaces_200(t *testing.T) {
	svc := &mockPlaceServicer{
		search: func(_ context.Context, query string) ([]domain.PlaceCandidate, error) {
			assert.Equal(t, "sagrada familia", query)
			return []domain.PlaceCandidate{{
				Name:       "Sagrada Família",
				Latitude:   41.4036,
				Longitude:  2.1744,
				Provider:   "nominatim",
				ProviderID: "way/5414364",
			}}, nil
		},
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/places?q=sagrada+familia", nil))
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Sagrada Família", resp[0]["name"])
	assert.Equal(t, "way/5414364", resp[0]["providerId"])
}

func TestSearchPlaces_400_EmptyQuery(t *testing.T) {
	svc := &mockPlaceServicer{
		search: func(_ context.Context, _ string) ([]domain.PlaceCandidate, error) {
			return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
		},
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/places", nil))
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchPlaces_503_ProviderDown(t *testing.T) {
	svc := &mockPlaceServicer{
		search: func(_ context.Context, _ string) ([]domain.PlaceCandidate, error) {
			return nil, domain.ErrUnavailable
		},
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/places?q=barcelona", nil))
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearchPlaces_401_WithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/places?q=barcelona", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, &mockPlaceServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
