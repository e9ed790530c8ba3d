// Package models holds the persisted entity types shared by repositories
// and services.
package models

import "time"

// User is an identity record. PasswordHash never leaves the server; external
// responses carry the PublicProfile projection instead.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// PublicProfile is the externally visible part of a User.
type PublicProfile struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the projection of u that is safe to serialize.
func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, UserName: u.UserName, Email: u.Email}
}
