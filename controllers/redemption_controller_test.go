package controllers

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

	"github.com/kudoshq/recognition-bff/models"
	"github.com/kudoshq/recognition-bff/services"
)

// --- Mock Service ---
type MockRedemptionService struct {
	mock.Mock
}

func (m *MockRedemptionService) List(ctx context.Context, userID string, filter services.FilterState) (*models.ListResult, *services.ServiceError) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*services.ServiceError)
	}
	return args.Get(0).(*models.ListResult), nil
}

func (m *MockRedemptionService) Get(ctx context.Context, userID, redemptionID string) (*models.RedemptionView, *services.ServiceError) {
	args := m.Called(ctx, userID, redemptionID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*services.ServiceError)
	}
	return args.Get(0).(*models.RedemptionView), nil
}

func (m *MockRedemptionService) Cancel(ctx context.Context, userID, redemptionID, reason string) (*models.CancelResult, *services.ServiceError) {
	args := m.Called(ctx, userID, redemptionID, reason)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*services.ServiceError)
	}
	return args.Get(0).(*models.CancelResult), nil
}

// --- Tests ---

func TestListRedemptionsController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success - 200 OK With Pagination Meta", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		result := &models.ListResult{
			Items:   []models.RedemptionView{{Redemption: models.Redemption{ID: "r1"}}},
			Offset:  0,
			Limit:   services.PageSize,
			HasMore: false,
		}
		mockService.On("List", mock.Anything, "u1", mock.Anything).Return(result, nil).Once()

		router := gin.New()
		router.GET("/bff/redemptions", asUser("u1"), controller.List)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"has_more":false`)
		assert.Contains(t, recorder.Body.String(), `"active_filters":false`)
		mockService.AssertExpectations(t)
	})

	t.Run("Filters - Setters Reset Pagination", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		var captured services.FilterState
		mockService.On("List", mock.Anything, "u1", mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(services.FilterState)
			}).
			Return(&models.ListResult{Limit: services.PageSize}, nil).Once()

		router := gin.New()
		router.GET("/bff/redemptions", asUser("u1"), controller.List)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions?search=mug&status=shipped&period=week&offset=20", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "mug", captured.Search)
		assert.Equal(t, "shipped", captured.Status)
		assert.Equal(t, services.PeriodWeek, captured.Period)
		assert.Equal(t, 20, captured.Offset)
		assert.True(t, captured.HasActiveFilters())
	})

	t.Run("Failure - Custom Period Without Bounds - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		router := gin.New()
		router.GET("/bff/redemptions", asUser("u1"), controller.List)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions?period=custom", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Period - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		router := gin.New()
		router.GET("/bff/redemptions", asUser("u1"), controller.List)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions?period=yesterday", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "period must be one of")
		mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Negative Offset - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		router := gin.New()
		router.GET("/bff/redemptions", asUser("u1"), controller.List)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions?offset=-10", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetRedemptionController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success - 200 OK With Timeline", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		view := &models.RedemptionView{
			Redemption: models.Redemption{ID: "r1", Status: "shipped"},
			Timeline: []models.TimelineStep{
				{Title: "Order received", Done: true},
				{Title: "Processing", Done: true},
				{Title: "Dispatched for delivery", Done: true},
				{Title: "Delivered", Done: false},
			},
			Progress:  75,
			CanCancel: true,
		}
		mockService.On("Get", mock.Anything, "u1", "r1").Return(view, nil).Once()

		router := gin.New()
		router.GET("/bff/redemptions/:id", asUser("u1"), controller.Get)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions/r1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Redemption models.RedemptionView `json:"redemption"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Len(t, body.Redemption.Timeline, 4)
		assert.InDelta(t, 75.0, body.Redemption.Progress, 0.001)
		assert.True(t, body.Redemption.CanCancel)
	})

	t.Run("Failure - Not Found - 404", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		mockService.On("Get", mock.Anything, "u1", "nope").
			Return(nil, &services.ServiceError{StatusCode: 404, Message: "Redemption not found"}).Once()

		router := gin.New()
		router.GET("/bff/redemptions/:id", asUser("u1"), controller.Get)

		req, _ := http.NewRequest(http.MethodGet, "/bff/redemptions/nope", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestCancelRedemptionController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success - 200 OK With Redirect Countdown", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		mockService.On("Cancel", mock.Anything, "u1", "r1", "wrong size").
			Return(&models.CancelResult{RefundedCoins: 300, RedirectAfterSeconds: 3}, nil).Once()

		router := gin.New()
		router.POST("/bff/redemptions/:id/cancel", asUser("u1"), controller.Cancel)

		payload := `{"reason": "wrong size"}`
		req, _ := http.NewRequest(http.MethodPost, "/bff/redemptions/r1/cancel", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"refunded_coins":300`)
		assert.Contains(t, recorder.Body.String(), `"redirect_after_seconds":3`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Reason - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		router := gin.New()
		router.POST("/bff/redemptions/:id/cancel", asUser("u1"), controller.Cancel)

		req, _ := http.NewRequest(http.MethodPost, "/bff/redemptions/r1/cancel", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Window Elapsed - 409 Conflict", func(t *testing.T) {
		mockService := new(MockRedemptionService)
		controller := NewRedemptionController(mockService)

		mockService.On("Cancel", mock.Anything, "u1", "r1", "too late").
			Return(nil, &services.ServiceError{StatusCode: 409, Message: "This redemption can no longer be cancelled"}).Once()

		router := gin.New()
		router.POST("/bff/redemptions/:id/cancel", asUser("u1"), controller.Cancel)

		payload := `{"reason": "too late"}`
		req, _ := http.NewRequest(http.MethodPost, "/bff/redemptions/r1/cancel", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "no longer be cancelled")
	})
}
