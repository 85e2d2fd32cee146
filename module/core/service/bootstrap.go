package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/database"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/publisher"
)

const welcomeText = "Welcome to Kitty Compass"

type BootstrapService struct {
	subs      database.SubscriptionRepository
	publisher publisher.NotificationPublisher
	newID     func() string
	now       func() time.Time
}

func NewBootstrapService(subs database.SubscriptionRepository, pub publisher.NotificationPublisher) *BootstrapService {
	return &BootstrapService{
		subs:      subs,
		publisher: pub,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// BootstrapUser subscribes the user to location updates and sends a welcome
// message. A failed subscription is logged and does not block the welcome.
func (s *BootstrapService) BootstrapUser(ctx context.Context, userID, callbackURL string) error {
	now := s.now()

	sub := &domain.Subscription{
		UserID:      userID,
		Collection:  domain.CollectionLocations,
		CallbackURL: callbackURL,
		CreatedAt:   now,
	}
	if err := s.subs.Upsert(ctx, sub); err != nil {
		log.Printf("failed to create locations subscription for user %s: %v", userID, err)
	} else {
		log.Printf("inserted locations subscription for user %s", userID)
	}

	n := &domain.Notification{
		ID:          s.newID(),
		UserID:      userID,
		Kind:        domain.NotificationWelcome,
		Text:        welcomeText,
		Level:       domain.NotificationLevelDefault,
		MenuPayload: domain.OpenAppPayload,
		Timestamp:   now,
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		return fmt.Errorf("publish welcome: %w", err)
	}

	log.Printf("sent welcome message %s to user %s", n.ID, userID)
	return nil
}

func (s *BootstrapService) GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	return s.subs.Get(ctx, userID, domain.CollectionLocations)
}
