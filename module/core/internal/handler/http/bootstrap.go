package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

type bootstrapService interface {
	BootstrapUser(ctx context.Context, userID, callbackURL string) error
	GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error)
}

type bootstrapRequest struct {
	CallbackURL string `json:"callback_url"`
}

type BootstrapHandler struct {
	svc bootstrapService
}

func NewBootstrapHandler(svc bootstrapService) *BootstrapHandler {
	return &BootstrapHandler{svc: svc}
}

func (h *BootstrapHandler) Register(r *gin.RouterGroup) {
	r.POST("/users/:user_id/bootstrap", h.Bootstrap)
	r.GET("/users/:user_id/subscription", h.GetSubscription)
}

func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	userID := c.Param("user_id")

	var req bootstrapRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if req.CallbackURL == "" {
		req.CallbackURL = callbackURL(c.Request)
	}

	if err := h.svc.BootstrapUser(c.Request.Context(), userID, req.CallbackURL); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to bootstrap user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": userID, "callback_url": req.CallbackURL})
}

func (h *BootstrapHandler) GetSubscription(c *gin.Context) {
	sub, err := h.svc.GetSubscription(c.Request.Context(), c.Param("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// callbackURL points the location subscription back at this server's webhook.
func callbackURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + "/notify"
}
