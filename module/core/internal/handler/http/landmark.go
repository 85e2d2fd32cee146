package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

type landmarkStore interface {
	Places() []domain.Place
	QueryNearby(lat, lon, radiusKm float64) []domain.Place
}

type landmarkSelector interface {
	SelectLandmarkToNotify(lat, lon float64) (domain.Place, bool)
}

type nearbyResponse struct {
	Landmarks []domain.Place `json:"landmarks"`
	Selected  *domain.Place  `json:"selected"`
}

type LandmarkHandler struct {
	store    landmarkStore
	selector landmarkSelector
	radiusKm float64
}

func NewLandmarkHandler(store landmarkStore, selector landmarkSelector, radiusKm float64) *LandmarkHandler {
	return &LandmarkHandler{store: store, selector: selector, radiusKm: radiusKm}
}

func (h *LandmarkHandler) Register(r *gin.RouterGroup) {
	r.GET("/landmarks", h.List)
	r.GET("/landmarks/nearby", h.Nearby)
}

func (h *LandmarkHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Places())
}

// Nearby reports the landmarks in range and the one a location update at
// this point would notify about.
func (h *LandmarkHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat parameter"})
		return
	}

	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon parameter"})
		return
	}

	radius := h.radiusKm
	if v := c.Query("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius parameter"})
			return
		}
	}

	resp := nearbyResponse{Landmarks: h.store.QueryNearby(lat, lon, radius)}
	if place, ok := h.selector.SelectLandmarkToNotify(lat, lon); ok {
		resp.Selected = &place
	}
	c.JSON(http.StatusOK, resp)
}
