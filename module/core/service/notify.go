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

const (
	OutcomeNone      = "none"
	OutcomeDuplicate = "duplicate"
	OutcomeSent      = "sent"
	OutcomeFailed    = "failed"
)

type landmarkSelector interface {
	SelectLandmarkToNotify(lat, lon float64) (domain.Place, bool)
}

type outcomeRecorder interface {
	RecordOutcome(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordOutcome(string) {}

type NotifyService struct {
	selector  landmarkSelector
	publisher publisher.NotificationPublisher
	sent      database.NotificationRepository
	recorder  outcomeRecorder
	newID     func() string
}

func NewNotifyService(selector landmarkSelector, pub publisher.NotificationPublisher, sent database.NotificationRepository, recorder outcomeRecorder) *NotifyService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &NotifyService{
		selector:  selector,
		publisher: pub,
		sent:      sent,
		recorder:  recorder,
		newID:     uuid.NewString,
	}
}

// HandleLocation sends at most one landmark notification per user and place.
func (s *NotifyService) HandleLocation(ctx context.Context, ul *domain.UserLocation) error {
	place, ok := s.selector.SelectLandmarkToNotify(ul.Location.Lat, ul.Location.Lon)
	if !ok {
		log.Printf("location ping from user %s, but not near anything interesting", ul.UserID)
		s.recorder.RecordOutcome(OutcomeNone)
		return nil
	}

	sent, err := s.sent.WasSent(ctx, ul.UserID, place.Name)
	if err != nil {
		s.recorder.RecordOutcome(OutcomeFailed)
		return fmt.Errorf("check sent notifications: %w", err)
	}
	if sent {
		log.Printf("user %s already notified about %s", ul.UserID, place.Name)
		s.recorder.RecordOutcome(OutcomeDuplicate)
		return nil
	}

	ts := ul.Location.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	n := &domain.Notification{
		ID:          s.newID(),
		UserID:      ul.UserID,
		Kind:        domain.NotificationLandmarkNearby,
		Text:        "Meow! Did you know you are close to " + place.Name,
		Level:       domain.NotificationLevelDefault,
		MenuPayload: domain.OpenAppPayload,
		Place:       &place,
		Timestamp:   ts,
	}

	if err := s.publisher.Publish(ctx, n); err != nil {
		s.recorder.RecordOutcome(OutcomeFailed)
		return fmt.Errorf("publish notification: %w", err)
	}

	if err := s.sent.Record(ctx, n); err != nil {
		s.recorder.RecordOutcome(OutcomeFailed)
		return fmt.Errorf("record notification: %w", err)
	}

	log.Printf("notified user %s about %s", ul.UserID, place.Name)
	s.recorder.RecordOutcome(OutcomeSent)
	return nil
}
