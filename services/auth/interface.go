package auth

import (
	"context"

	"lendhub/session"
)

// AuthService signs users and admins in and out. It is the only writer of the
// session store; every other service just reads the stored token.
type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*session.Session, error)
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	AdminSignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignOut(ctx context.Context) error
}

// SignUpRequest is the customer registration form payload.
type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AuthResponse is the backend's reply to a successful sign-in or sign-up.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}
