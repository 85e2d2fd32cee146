package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

const maxNotificationBody = 64 << 10

type locationSaver interface {
	SaveLocation(ctx context.Context, ul *domain.UserLocation) error
}

type notifyService interface {
	HandleLocation(ctx context.Context, ul *domain.UserLocation) error
}

// locationNotification is the callback body sent by the location service.
type locationNotification struct {
	Collection string   `json:"collection"`
	ItemID     string   `json:"item_id"`
	UserToken  string   `json:"user_token"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Timestamp  int64    `json:"timestamp"`
}

type WebhookHandler struct {
	locationSvc locationSaver
	notifySvc   notifyService
}

func NewWebhookHandler(locationSvc locationSaver, notifySvc notifyService) *WebhookHandler {
	return &WebhookHandler{locationSvc: locationSvc, notifySvc: notifySvc}
}

func (h *WebhookHandler) Register(r *gin.RouterGroup) {
	r.POST("/notify", h.Notify)
}

// Notify always answers OK once the payload is understood so the sender does
// not redeliver; pipeline failures are only logged.
func (h *WebhookHandler) Notify(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBody)

	var n locationNotification
	if err := json.NewDecoder(body).Decode(&n); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "notification payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification payload"})
		return
	}

	log.Printf("got notification %q for collection %q", n.ItemID, n.Collection)

	if n.Collection != domain.CollectionLocations {
		log.Printf("ignoring notification for unsupported collection %q", n.Collection)
		c.String(http.StatusOK, "OK")
		return
	}

	ul, err := n.toUserLocation()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("new location for user %s is %f, %f", ul.UserID, ul.Location.Lat, ul.Location.Lon)

	ctx := c.Request.Context()
	if err := h.locationSvc.SaveLocation(ctx, ul); err != nil {
		log.Printf("save location error: %v", err)
	} else if err := h.notifySvc.HandleLocation(ctx, ul); err != nil {
		log.Printf("landmark notification error: %v", err)
	}

	c.String(http.StatusOK, "OK")
}

func (n *locationNotification) toUserLocation() (*domain.UserLocation, error) {
	if n.UserToken == "" {
		return nil, errors.New("user_token: required")
	}
	if n.Latitude == nil || *n.Latitude < -90 || *n.Latitude > 90 {
		return nil, errors.New("latitude: must be between -90 and 90")
	}
	if n.Longitude == nil || *n.Longitude < -180 || *n.Longitude > 180 {
		return nil, errors.New("longitude: must be between -180 and 180")
	}

	ts := time.Now()
	if n.Timestamp > 0 {
		ts = time.Unix(n.Timestamp, 0)
	}

	return &domain.UserLocation{
		UserID: n.UserToken,
		Location: domain.Location{
			Lat:       *n.Latitude,
			Lon:       *n.Longitude,
			Timestamp: ts,
		},
	}, nil
}
