package events

import "time"

// Event types
const (
	UserRegistered = "user.registered"
	UserActivated  = "user.activated"
)

// Stream names
const (
	UserEventsStream = "user.events"
)

// Event is the wire structure written to the Redis stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

type UserActivatedEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
