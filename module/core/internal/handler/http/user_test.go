package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

type mockLocationService struct {
	getLatestFn   func(ctx context.Context, userID string) (*domain.UserLocation, error)
	getHistoryFn  func(ctx context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error)
	getAllUsersFn func(ctx context.Context) ([]domain.User, error)
}

func (m *mockLocationService) GetLatest(ctx context.Context, userID string) (*domain.UserLocation, error) {
	return m.getLatestFn(ctx, userID)
}

func (m *mockLocationService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error) {
	return m.getHistoryFn(ctx, query)
}

func (m *mockLocationService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return m.getAllUsersFn(ctx)
}

func setupRouter(svc locationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(svc)
	h.Register(r.Group(""))
	return r
}

func TestGetLatestLocation_Success(t *testing.T) {
	ts := time.Unix(1715003456, 0)
	svc := &mockLocationService{
		getLatestFn: func(_ context.Context, userID string) (*domain.UserLocation, error) {
			if userID != "user-42" {
				t.Fatalf("unexpected userID: %s", userID)
			}
			return &domain.UserLocation{
				UserID:   "user-42",
				Location: domain.Location{Lat: 47.6062, Lon: -122.3321, Timestamp: ts},
			}, nil
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/location", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp locationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.UserID != "user-42" {
		t.Errorf("expected user-42, got %s", resp.UserID)
	}
	if resp.Latitude != 47.6062 {
		t.Errorf("expected 47.6062, got %f", resp.Latitude)
	}
	if resp.Timestamp != 1715003456 {
		t.Errorf("expected 1715003456, got %d", resp.Timestamp)
	}
}

func TestGetLatestLocation_NotFound(t *testing.T) {
	svc := &mockLocationService{
		getLatestFn: func(_ context.Context, _ string) (*domain.UserLocation, error) {
			return nil, sql.ErrNoRows
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/UNKNOWN/location", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetHistory_Success(t *testing.T) {
	ts1 := time.Unix(1715000000, 0)
	ts2 := time.Unix(1715005000, 0)
	svc := &mockLocationService{
		getHistoryFn: func(_ context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error) {
			if query.UserID != "user-42" {
				t.Fatalf("unexpected userID: %s", query.UserID)
			}
			return []domain.UserLocation{
				{UserID: "user-42", Location: domain.Location{Lat: 47.61, Lon: -122.33, Timestamp: ts1}},
				{UserID: "user-42", Location: domain.Location{Lat: 47.62, Lon: -122.34, Timestamp: ts2}},
			}, nil
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/history?start=1715000000&end=1715009999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp []locationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp))
	}
}

func TestGetHistory_InvalidStart(t *testing.T) {
	svc := &mockLocationService{}
	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/history?start=abc&end=1715009999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetHistory_InvalidEnd(t *testing.T) {
	svc := &mockLocationService{}
	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/history?start=1715000000&end=abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetHistory_ServiceError(t *testing.T) {
	svc := &mockLocationService{
		getHistoryFn: func(_ context.Context, _ *domain.HistoryQuery) ([]domain.UserLocation, error) {
			return nil, errors.New("db error")
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/history?start=1715000000&end=1715009999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetAllUsers_Success(t *testing.T) {
	svc := &mockLocationService{
		getAllUsersFn: func(_ context.Context) ([]domain.User, error) {
			return []domain.User{
				{UserID: "user-42"},
				{UserID: "user-77"},
			}, nil
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp []domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
	if resp[0].UserID != "user-42" {
		t.Errorf("expected user-42, got %s", resp[0].UserID)
	}
}

func TestGetAllUsers_Error(t *testing.T) {
	svc := &mockLocationService{
		getAllUsersFn: func(_ context.Context) ([]domain.User, error) {
			return nil, errors.New("db error")
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetLatestLocation_ServiceError(t *testing.T) {
	svc := &mockLocationService{
		getLatestFn: func(_ context.Context, _ string) (*domain.UserLocation, error) {
			return nil, errors.New("connection reset")
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/location", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetHistory_EndBeforeStart(t *testing.T) {
	svc := &mockLocationService{}
	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-42/history?start=1715009999&end=1715000000", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetAllUsers_Empty(t *testing.T) {
	svc := &mockLocationService{
		getAllUsersFn: func(_ context.Context) ([]domain.User, error) {
			return nil, nil
		},
	}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("expected [], got %s", w.Body.String())
	}
}
