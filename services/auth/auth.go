package auth

import (
	"context"
	"fmt"
	"time"

	"lendhub/services/api"
	"lendhub/session"
)

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	api   *api.Client
	store session.Store
}

func NewDefaultAuthService(client *api.Client, store session.Store) (*DefaultAuthService, error) {
	if client == nil || store == nil {
		return nil, fmt.Errorf("auth service initialization error: api client or session store is nil")
	}
	return &DefaultAuthService{api: client, store: store}, nil
}

func (s *DefaultAuthService) SignUp(ctx context.Context, req SignUpRequest) (*session.Session, error) {
	var resp AuthResponse
	if err := s.api.Post(ctx, "/users/signup", req, &resp); err != nil {
		return nil, err
	}
	return s.establish(ctx, resp, session.RoleCustomer)
}

func (s *DefaultAuthService) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := s.api.Post(ctx, "/users/login", body, &resp); err != nil {
		return nil, err
	}
	return s.establish(ctx, resp, session.RoleCustomer)
}

func (s *DefaultAuthService) AdminSignIn(ctx context.Context, email, password string) (*session.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := s.api.Post(ctx, "/admins/login", body, &resp); err != nil {
		return nil, err
	}
	return s.establish(ctx, resp, session.RoleAdmin)
}

func (s *DefaultAuthService) SignOut(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// establish is the single session write boundary.
func (s *DefaultAuthService) establish(ctx context.Context, resp AuthResponse, role string) (*session.Session, error) {
	sess := session.Session{
		UserID:   resp.ID,
		UserName: resp.Name,
		Token:    resp.Token,
		Role:     role,
		IssuedAt: time.Now(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return &sess, nil
}
