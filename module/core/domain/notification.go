package domain

import "time"

type NotificationKind string

const (
	NotificationLandmarkNearby NotificationKind = "landmark_nearby"
	NotificationWelcome        NotificationKind = "welcome"
)

const (
	NotificationLevelDefault = "DEFAULT"
	OpenAppPayload           = "kittycompass://open"
)

type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Kind        NotificationKind `json:"kind"`
	Text        string           `json:"text"`
	Level       string           `json:"level"`
	MenuPayload string           `json:"menu_payload"`
	Place       *Place           `json:"place,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}
