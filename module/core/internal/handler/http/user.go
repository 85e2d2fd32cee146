package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

type locationService interface {
	GetLatest(ctx context.Context, userID string) (*domain.UserLocation, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

type locationResponse struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

type UserHandler struct {
	locationSvc locationService
}

func NewUserHandler(locationSvc locationService) *UserHandler {
	return &UserHandler{locationSvc: locationSvc}
}

func (h *UserHandler) Register(r *gin.RouterGroup) {
	r.GET("/users", h.GetAllUsers)
	r.GET("/users/:user_id/location", h.GetLatestLocation)
	r.GET("/users/:user_id/history", h.GetHistory)
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.locationSvc.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetLatestLocation(c *gin.Context) {
	userID := c.Param("user_id")

	ul, err := h.locationSvc.GetLatest(c.Request.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location"})
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(ul))
}

func (h *UserHandler) GetHistory(c *gin.Context) {
	userID := c.Param("user_id")

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	if end < start {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return
	}

	query := &domain.HistoryQuery{
		UserID: userID,
		Start:  time.Unix(start, 0),
		End:    time.Unix(end, 0),
	}

	locations, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]locationResponse, len(locations))
	for i, ul := range locations {
		results[i] = toLocationResponse(&ul)
	}
	c.JSON(http.StatusOK, results)
}

func toLocationResponse(ul *domain.UserLocation) locationResponse {
	return locationResponse{
		UserID:    ul.UserID,
		Latitude:  ul.Location.Lat,
		Longitude: ul.Location.Lon,
		Timestamp: ul.Location.Timestamp.Unix(),
	}
}
