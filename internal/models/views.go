package models

import "time"

// UserView is the read-optimised projection of a user. It never carries the
// password hash and is what List, Detail and the Redis cache work with.
type UserView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	ProfilePhoto string    `json:"profile_photo"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Page is one page of a user listing.
type Page struct {
	Data    []UserView `json:"data"`
	Page    int        `json:"current_page"`
	PerPage int        `json:"per_page"`
	Total   int        `json:"total"`
}
