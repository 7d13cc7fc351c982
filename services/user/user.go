package user

import (
	"context"
	"fmt"

	"lendhub/models"
	"lendhub/services/api"
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	api *api.Client
}

func NewDefaultUserService(client *api.Client) (*DefaultUserService, error) {
	if client == nil {
		return nil, fmt.Errorf("user service initialization error: api client is nil")
	}
	return &DefaultUserService{api: client}, nil
}

func (s *DefaultUserService) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.api.Get(ctx, "/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	var u models.User
	if err := s.api.Put(ctx, "/users/me", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DefaultUserService) Loans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.api.Get(ctx, "/users/me/loans", &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *DefaultUserService) Loan(ctx context.Context, loanID string) (*models.Loan, error) {
	var loan models.Loan
	if err := s.api.Get(ctx, "/loans/"+loanID, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *DefaultUserService) ApplyLoan(ctx context.Context, application models.LoanApplication) (*models.Loan, error) {
	var loan models.Loan
	if err := s.api.Post(ctx, "/loans", application, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}
