package models

import "time"

// User is the customer profile as returned by the backend. The backend owns
// this shape; the client passes it through unmodified.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Address      string    `json:"address,omitempty"`
	Occupation   string    `json:"occupation,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate carries the editable profile fields from the settings screen.
type UserUpdate struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
}
