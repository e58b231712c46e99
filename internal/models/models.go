package models

import "time"

// User is the write model for an account. PasswordHash is never serialised.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	PasswordHash string    `json:"-"`
	ProfilePhoto string    `json:"profile_photo"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// View returns the read projection of the user.
func (u *User) View() *UserView {
	return &UserView{
		ID:           u.ID,
		Email:        u.Email,
		Fullname:     u.Fullname,
		ProfilePhoto: u.ProfilePhoto,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
