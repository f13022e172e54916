package handler

import (
	"bytes"
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

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateBookingResponse), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*dto.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookingResponse), args.Error(1)
}

func setupBookingTestRouter(handler *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	bookings := router.Group("/api/v1/bookings")
	{
		bookings.POST("", handler.Create)
		bookings.GET("/:id", handler.Get)
	}

	return router
}

func validCreateRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		ExperienceID: "exp-1",
		FullName:     "Asha Nair",
		Email:        "asha@example.com",
		Date:         "Oct 22",
		Time:         "07:00 am",
		Quantity:     2,
	}
}

func TestBookingHandler_Create_Success(t *testing.T) {
	mockService := new(MockBookingService)
	handler := NewBookingHandler(mockService)
	router := setupBookingTestRouter(handler)

	expected := &dto.CreateBookingResponse{
		Success:   true,
		BookingID: "HUF3K9QZ",
		Subtotal:  1998,
		Taxes:     120,
		Discount:  0,
		Total:     2118,
		Status:    "confirmed",
	}
	mockService.On("CreateBooking", mock.Anything, mock.AnythingOfType("*dto.CreateBookingRequest")).Return(expected, nil)

	body, _ := json.Marshal(validCreateRequest())
	req, _ := http.NewRequest("POST", "/api/v1/bookings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.CreateBookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "HUF3K9QZ", response.BookingID)
	assert.Equal(t, int64(2118), response.Total)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_Create_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.CreateBookingRequest)
	}{
		{
			name:   "missing experience id",
			mutate: func(r *dto.CreateBookingRequest) { r.ExperienceID = "" },
		},
		{
			name:   "missing full name",
			mutate: func(r *dto.CreateBookingRequest) { r.FullName = "" },
		},
		{
			name:   "malformed email",
			mutate: func(r *dto.CreateBookingRequest) { r.Email = "not-an-email" },
		},
		{
			name:   "zero quantity",
			mutate: func(r *dto.CreateBookingRequest) { r.Quantity = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockBookingService)
			handler := NewBookingHandler(mockService)
			router := setupBookingTestRouter(handler)

			request := validCreateRequest()
			tt.mutate(request)
			body, _ := json.Marshal(request)

			req, _ := http.NewRequest("POST", "/api/v1/bookings", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response dto.ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Equal(t, "INVALID_REQUEST", response.Code)

			mockService.AssertNotCalled(t, "CreateBooking")
		})
	}
}

func TestBookingHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "experience not found",
			serviceErr:     domain.ErrExperienceNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "time slot not found",
			serviceErr:     domain.ErrSlotNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "invalid promo code",
			serviceErr:     domain.ErrInvalidPromoCode,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_PROMO_CODE",
		},
		{
			name:           "slot sold out",
			serviceErr:     domain.ErrSlotSoldOut,
			expectedStatus: http.StatusConflict,
			expectedCode:   "SOLD_OUT",
		},
		{
			name:           "insufficient capacity",
			serviceErr:     domain.ErrSlotUnavailable,
			expectedStatus: http.StatusConflict,
			expectedCode:   "INSUFFICIENT_CAPACITY",
		},
		{
			name:           "date not offered",
			serviceErr:     domain.ErrDateNotOffered,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST",
		},
		{
			name:           "unexpected failure",
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockBookingService)
			handler := NewBookingHandler(mockService)
			router := setupBookingTestRouter(handler)

			mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			body, _ := json.Marshal(validCreateRequest())
			req, _ := http.NewRequest("POST", "/api/v1/bookings", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response dto.ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, response.Code)
		})
	}
}

func TestBookingHandler_Create_HeaderIdempotencyKey(t *testing.T) {
	mockService := new(MockBookingService)
	handler := NewBookingHandler(mockService)
	router := setupBookingTestRouter(handler)

	var captured *dto.CreateBookingRequest
	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*dto.CreateBookingRequest)
		}).
		Return(&dto.CreateBookingResponse{Success: true, BookingID: "HUFAAAAA", Status: "confirmed"}, nil)

	body, _ := json.Marshal(validCreateRequest())
	req, _ := http.NewRequest("POST", "/api/v1/bookings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", "client-key-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	if assert.NotNil(t, captured) {
		assert.Equal(t, "client-key-1", captured.IdempotencyKey)
	}
}

func TestBookingHandler_Create_BodyKeyWinsOverHeader(t *testing.T) {
	mockService := new(MockBookingService)
	handler := NewBookingHandler(mockService)
	router := setupBookingTestRouter(handler)

	var captured *dto.CreateBookingRequest
	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*dto.CreateBookingRequest)
		}).
		Return(&dto.CreateBookingResponse{Success: true, BookingID: "HUFAAAAA", Status: "confirmed"}, nil)

	request := validCreateRequest()
	request.IdempotencyKey = "body-key"
	body, _ := json.Marshal(request)

	req, _ := http.NewRequest("POST", "/api/v1/bookings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", "header-key")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	if assert.NotNil(t, captured) {
		assert.Equal(t, "body-key", captured.IdempotencyKey)
	}
}

func TestBookingHandler_Get_Success(t *testing.T) {
	mockService := new(MockBookingService)
	handler := NewBookingHandler(mockService)
	router := setupBookingTestRouter(handler)

	expected := &dto.BookingResponse{
		ID:        "booking-1",
		Reference: "HUF3K9QZ",
		FullName:  "Asha Nair",
		Status:    "confirmed",
	}
	mockService.On("GetBooking", mock.Anything, "HUF3K9QZ").Return(expected, nil)

	req, _ := http.NewRequest("GET", "/api/v1/bookings/HUF3K9QZ", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.BookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "HUF3K9QZ", response.Reference)
	assert.Equal(t, "Asha Nair", response.FullName)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	mockService := new(MockBookingService)
	handler := NewBookingHandler(mockService)
	router := setupBookingTestRouter(handler)

	mockService.On("GetBooking", mock.Anything, "HUFZZZZZ").Return(nil, domain.ErrBookingNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/bookings/HUFZZZZZ", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "NOT_FOUND", response.Code)
}
