package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/trailhuf/experiences-api/internal/domain"
	"github.com/trailhuf/experiences-api/internal/dto"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListExperiences(ctx context.Context, search string) ([]*domain.Experience, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Experience), args.Error(1)
}

func (m *MockCatalogService) GetExperience(ctx context.Context, id string) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

func (m *MockCatalogService) SeedCatalog(ctx context.Context, experiences []*domain.Experience) error {
	args := m.Called(ctx, experiences)
	return args.Error(0)
}

func setupExperienceTestRouter(handler *ExperienceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	experiences := router.Group("/api/v1/experiences")
	{
		experiences.GET("", handler.List)
		experiences.GET("/:id", handler.GetByID)
	}

	return router
}

func catalogFixture() []*domain.Experience {
	return []*domain.Experience{
		{
			ID:             "exp-1",
			Name:           "Kayaking In Udupi",
			Location:       "Udupi, Karnataka",
			Price:          999,
			AvailableDates: []string{"Oct 22", "Oct 23"},
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "07:00 am", Available: 4},
				{TimeLabel: "1:00 pm", Available: 0, SoldOut: true},
			},
		},
		{
			ID:       "exp-2",
			Name:     "Coffee Trail",
			Location: "Chikmagalur, Karnataka",
			Price:    1299,
		},
	}
}

func TestExperienceHandler_List(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewExperienceHandler(mockService)
	router := setupExperienceTestRouter(handler)

	mockService.On("ListExperiences", mock.Anything, "").Return(catalogFixture(), nil)

	req, _ := http.NewRequest("GET", "/api/v1/experiences", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ExperienceListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Total)
	assert.Len(t, response.Experiences, 2)
	assert.Equal(t, "Kayaking In Udupi", response.Experiences[0].Name)

	mockService.AssertExpectations(t)
}

func TestExperienceHandler_List_SearchPassedThrough(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewExperienceHandler(mockService)
	router := setupExperienceTestRouter(handler)

	mockService.On("ListExperiences", mock.Anything, "kayak").Return(catalogFixture()[:1], nil)

	req, _ := http.NewRequest("GET", "/api/v1/experiences?search=kayak", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ExperienceListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 1, response.Total)

	mockService.AssertExpectations(t)
}

func TestExperienceHandler_List_Empty(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewExperienceHandler(mockService)
	router := setupExperienceTestRouter(handler)

	mockService.On("ListExperiences", mock.Anything, "nothing").Return([]*domain.Experience{}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/experiences?search=nothing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ExperienceListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 0, response.Total)
	assert.NotNil(t, response.Experiences)
}

func TestExperienceHandler_List_ServiceError(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewExperienceHandler(mockService)
	router := setupExperienceTestRouter(handler)

	mockService.On("ListExperiences", mock.Anything, "").Return(nil, assert.AnError)

	req, _ := http.NewRequest("GET", "/api/v1/experiences", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "INTERNAL_ERROR", response.Code)
}

func TestExperienceHandler_GetByID(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewExperienceHandler(mockService)
	router := setupExperienceTestRouter(handler)

	mockService.On("GetExperience", mock.Anything, "exp-1").Return(catalogFixture()[0], nil)

	req, _ := http.NewRequest("GET", "/api/v1/experiences/exp-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ExperienceResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "exp-1", response.ID)
	assert.Len(t, response.TimeSlots, 2)
	assert.True(t, response.TimeSlots[1].SoldOut)

	mockService.AssertExpectations(t)
}

func TestExperienceHandler_GetByID_NotFound(t *testing.T) {
	mockService := new(MockCatalogService)
	handler := NewExperienceHandler(mockService)
	router := setupExperienceTestRouter(handler)

	mockService.On("GetExperience", mock.Anything, "missing").Return(nil, domain.ErrExperienceNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/experiences/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "NOT_FOUND", response.Code)
}
