package domain

import "time"

type Location struct {
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type UserLocation struct {
	UserID   string   `json:"user_id"`
	Location Location `json:"location"`
}

type User struct {
	UserID string `json:"user_id"`
}

type HistoryQuery struct {
	UserID string
	Start  time.Time
	End    time.Time
}
