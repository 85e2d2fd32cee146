package publisher

import (
	"encoding/json"
	"fmt"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

// Message is the timeline item sent to the user's device.
type Message struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Kind         string           `json:"kind"`
	Text         string           `json:"text"`
	Notification NotificationSpec `json:"notification"`
	Location     *MessageLocation `json:"location,omitempty"`
	MenuItems    []MenuItem       `json:"menu_items"`
	Timestamp    int64            `json:"timestamp"`
}

type NotificationSpec struct {
	Level string `json:"level"`
}

type MessageLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type MenuItem struct {
	Action  string `json:"action"`
	Payload string `json:"payload"`
}

func Encode(n *domain.Notification) ([]byte, error) {
	msg := Message{
		ID:           n.ID,
		UserID:       n.UserID,
		Kind:         string(n.Kind),
		Text:         n.Text,
		Notification: NotificationSpec{Level: n.Level},
		Timestamp:    n.Timestamp.Unix(),
	}
	if n.Place != nil {
		msg.Location = &MessageLocation{
			Name:      n.Place.Name,
			Latitude:  n.Place.Lat,
			Longitude: n.Place.Lon,
		}
	}
	if n.MenuPayload != "" {
		msg.MenuItems = []MenuItem{{Action: "OPEN_URI", Payload: n.MenuPayload}}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}
	return body, nil
}
