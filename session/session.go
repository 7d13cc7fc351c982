// Package session holds the authenticated identity for the lifetime of a
// client. It replaces the scattered per-call token lookups of the original
// client with a single read/write boundary: the auth service writes a session
// once at sign-in, every other service reads it through the Store.
package session

import (
	"context"
	"errors"
	"time"

	"lendhub/utils"
)

// Roles a session can carry. Customer and admin dashboards are gated on this.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("no active session")

// Session is the authenticated identity attached to backend requests.
type Session struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Token    string    `json:"token"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issuedAt"`
}

// BearerToken returns the token to attach as the Authorization header.
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}

// IsAdmin reports whether this session may call admin resources.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Expired reports whether the bearer token's exp claim has passed.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.Token == "" {
		return true
	}
	return utils.TokenExpired(s.Token, now)
}

// Store persists a session across client restarts.
type Store interface {
	Save(ctx context.Context, sess Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}
