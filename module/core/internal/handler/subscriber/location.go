package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

const TopicPattern = "/wearable/user/+/location"

type locationService interface {
	SaveLocation(ctx context.Context, ul *domain.UserLocation) error
}

type notifyService interface {
	HandleLocation(ctx context.Context, ul *domain.UserLocation) error
}

type locationMessage struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

type LocationSubscriber struct {
	client      mqtt.Client
	locationSvc locationService
	notifySvc   notifyService
}

func NewLocationSubscriber(client mqtt.Client, locationSvc locationService, notifySvc notifyService) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		locationSvc: locationSvc,
		notifySvc:   notifySvc,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) Stop() error {
	token := s.client.Unsubscribe(TopicPattern)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw locationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid location message on %s: %v", msg.Topic(), err)
		return
	}

	if err := validateLocationMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	ul := &domain.UserLocation{
		UserID: raw.UserID,
		Location: domain.Location{
			Lat:       raw.Latitude,
			Lon:       raw.Longitude,
			Timestamp: time.Unix(raw.Timestamp, 0),
		},
	}

	ctx := context.Background()

	if err := s.locationSvc.SaveLocation(ctx, ul); err != nil {
		log.Printf("save location error: %v", err)
		return
	}

	if err := s.notifySvc.HandleLocation(ctx, ul); err != nil {
		log.Printf("landmark notification error: %v", err)
	}
}

func validateLocationMessage(msg *locationMessage) error {
	if msg.UserID == "" {
		return fmt.Errorf("user_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
