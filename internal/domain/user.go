package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced user does not exist.
var ErrNotFound = errors.New("user not found")

// User is the domain entity for a user account.
// Не зависит от Gin, Postgres, Redis.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Avatar       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the external view of a User. It has no password hash field
// at all, so the hash cannot leak through serialization.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public projects the user into its external view.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
