package domain

import "time"

const CollectionLocations = "locations"

type Subscription struct {
	UserID      string    `json:"user_id"`
	Collection  string    `json:"collection"`
	CallbackURL string    `json:"callback_url"`
	CreatedAt   time.Time `json:"created_at"`
}
