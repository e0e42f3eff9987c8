package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reporting-service/domain/dto"
	"reporting-service/domain/model"
	httpHandler "reporting-service/interfaces/http"
	"reporting-service/server"
	"reporting-service/usecase"
)

type MockReportUsecase struct {
	mock.Mock
}

func (m *MockReportUsecase) BuildSummaryReport(ctx context.Context) (*dto.SummaryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SummaryReport), args.Error(1)
}

func (m *MockReportUsecase) BuildUserActivityReport(ctx context.Context, userID int) (*dto.UserActivityReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserActivityReport), args.Error(1)
}

func newRouter(uc usecase.IReportUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return server.InitiateRouter(
		httpHandler.NewReportHandler(uc),
		httpHandler.NewHealthHandler(),
		[]string{"http://localhost:3000"},
	)
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Summary(t *testing.T) {
	uc := new(MockReportUsecase)
	uc.On("BuildSummaryReport", mock.Anything).
		Return(&dto.SummaryReport{
			TotalUsers:    2,
			TotalVideos:   3,
			TopCategories: []dto.CategoryCount{{Category: "Programming", Count: 2}, {Category: "Design", Count: 1}},
		}, nil).
		Once()

	w := get(newRouter(uc), "/api/reports/summary")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_users": 2,
		"total_videos": 3,
		"top_categories": [{"category":"Programming","count":2},{"category":"Design","count":1}]
	}`, w.Body.String())
	uc.AssertExpectations(t)
}

func TestRouter_Summary_Failure(t *testing.T) {
	uc := new(MockReportUsecase)
	uc.On("BuildSummaryReport", mock.Anything).Return(nil, assert.AnError).Once()

	w := get(newRouter(uc), "/api/reports/summary")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+assert.AnError.Error()+`"}`, w.Body.String())
}

func TestRouter_UserActivity(t *testing.T) {
	category := "Programming"
	duration := 300.0
	owner := 1

	uc := new(MockReportUsecase)
	uc.On("BuildUserActivityReport", mock.Anything, 1).
		Return(&dto.UserActivityReport{
			User:                 model.UserSummary{ID: 1, Name: "Test User", Email: "test@test.com"},
			TotalVideos:          1,
			TotalDurationSeconds: 300,
			VideosByCategory:     map[string]int{"Programming": 1},
			Videos:               []model.Video{{ID: 1, Title: "Video 1", Category: &category, Duration: &duration, UserID: &owner}},
		}, nil).
		Once()

	w := get(newRouter(uc), "/api/reports/user/1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"user": {"id":1,"name":"Test User","email":"test@test.com"},
		"total_videos": 1,
		"total_duration_seconds": 300,
		"videos_by_category": {"Programming":1},
		"videos": [{"id":1,"title":"Video 1","category":"Programming","duration":300,"userId":1}]
	}`, w.Body.String())
	uc.AssertExpectations(t)
}

func TestRouter_UserActivity_NotFound(t *testing.T) {
	uc := new(MockReportUsecase)
	uc.On("BuildUserActivityReport", mock.Anything, 999).Return(nil, usecase.ErrUserNotFound).Once()

	w := get(newRouter(uc), "/api/reports/user/999")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body.Error)
}

func TestRouter_UserActivity_Failure(t *testing.T) {
	uc := new(MockReportUsecase)
	uc.On("BuildUserActivityReport", mock.Anything, 3).Return(nil, assert.AnError).Once()

	w := get(newRouter(uc), "/api/reports/user/3")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_UserActivity_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "-1", "+1", "1.5", "99999999999999999999999"} {
		t.Run(id, func(t *testing.T) {
			uc := new(MockReportUsecase)

			w := get(newRouter(uc), "/api/reports/user/"+url.PathEscape(id))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"user_id must be an integer"}`, w.Body.String())
			uc.AssertNotCalled(t, "BuildUserActivityReport", mock.Anything, mock.Anything)
		})
	}
}

func TestRouter_UserActivity_VideosKeepCatalogFields(t *testing.T) {
	var videos []model.Video
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"title":"Video 1","userId":1,"thumbnailUrl":"https://img/1.png","user":{"id":1,"name":"Test User"}}]`), &videos))

	uc := new(MockReportUsecase)
	uc.On("BuildUserActivityReport", mock.Anything, 1).
		Return(&dto.UserActivityReport{
			User:             model.UserSummary{ID: 1, Name: "Test User", Email: "test@test.com"},
			TotalVideos:      1,
			VideosByCategory: map[string]int{},
			Videos:           videos,
		}, nil).
		Once()

	w := get(newRouter(uc), "/api/reports/user/1")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Videos []map[string]interface{} `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Videos, 1)
	assert.Equal(t, "https://img/1.png", body.Videos[0]["thumbnailUrl"])
	assert.Equal(t, map[string]interface{}{"id": float64(1), "name": "Test User"}, body.Videos[0]["user"])
}

func TestRouter_Healthz(t *testing.T) {
	w := get(newRouter(new(MockReportUsecase)), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := newRouter(new(MockReportUsecase))
	_ = get(router, "/healthz")

	w := get(router, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reporting_http_request_duration_seconds")
}
