package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamly/internal/specialfares/repository"
	"roamly/pkg/logger"
	"roamly/pkg/model"
)

type fakeFareService struct {
	listFilter    repository.ListFilter
	listResult    []*model.SpecialFare
	created       *model.SpecialFare
	deactivatedID string
}

func (f *fakeFareService) List(_ context.Context, filter repository.ListFilter) ([]*model.SpecialFare, error) {
	f.listFilter = filter
	if f.listResult == nil {
		return []*model.SpecialFare{}, nil
	}
	return f.listResult, nil
}

func (f *fakeFareService) Create(_ context.Context, fare *model.SpecialFare) error {
	fare.ID = "656f1e4d8b9c2a0002000001"
	f.created = fare
	return nil
}

func (f *fakeFareService) Update(_ context.Context, id string, _ *model.SpecialFareUpdate) (*model.SpecialFare, error) {
	return &model.SpecialFare{ID: id}, nil
}

func (f *fakeFareService) Deactivate(_ context.Context, id string) error {
	f.deactivatedID = id
	return nil
}

func noAuth(next httprouter.Handle) httprouter.Handle { return next }

func newRouter(svc *fakeFareService) *httprouter.Router {
	router := httprouter.New()
	log := logger.New(logger.Config{Output: io.Discard})
	NewSpecialFareHandler(svc, noAuth, log).RegisterRoutes(router)
	return router
}

func TestListEnvelopeHasSuccessFlag(t *testing.T) {
	router := newRouter(&fakeFareService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/special-fares", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    []model.SpecialFare `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestPublicListForcesActiveAndKeepsOtherFilters(t *testing.T) {
	svc := &fakeFareService{}
	router := newRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/special-fares?isLimitedTime=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.listFilter.IsActive)
	assert.True(t, *svc.listFilter.IsActive)
	require.NotNil(t, svc.listFilter.IsLimitedTime)
	assert.True(t, *svc.listFilter.IsLimitedTime)
}

func TestCreateDefaultsActiveAndReturns201(t *testing.T) {
	svc := &fakeFareService{}
	router := newRouter(svc)

	body := `{"title":"Dubai Flash Sale","description":"d","price":499,"originalPrice":699,` +
		`"validFrom":"2025-01-01","validTo":"2025-02-01",` +
		`"departureCities":[{"city":"Kochi"}],"arrivalCities":[{"city":"Dubai"}]}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/special-fares", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.True(t, svc.created.IsActive)

	var resp struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    model.SpecialFare `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "656f1e4d8b9c2a0002000001", resp.Data.ID)
}

func TestDeleteReturnsSuccessMessageWithoutData(t *testing.T) {
	svc := &fakeFareService{}
	router := newRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/special-fares?id=abc123", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", svc.deactivatedID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp, "message")
	assert.NotContains(t, resp, "data")
}

func TestDeleteRequiresID(t *testing.T) {
	router := newRouter(&fakeFareService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/special-fares", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
