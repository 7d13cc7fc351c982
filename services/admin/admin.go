package admin

import (
	"context"
	"fmt"

	"lendhub/models"
	"lendhub/services/api"
)

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	api *api.Client
}

func NewDefaultAdminService(client *api.Client) (*DefaultAdminService, error) {
	if client == nil {
		return nil, fmt.Errorf("admin service initialization error: api client is nil")
	}
	return &DefaultAdminService{api: client}, nil
}

func (s *DefaultAdminService) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.api.Get(ctx, "/admins/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DefaultAdminService) User(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := s.api.Get(ctx, "/admins/users/"+userID, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DefaultAdminService) DeleteUser(ctx context.Context, userID string) error {
	return s.api.Delete(ctx, "/admins/users/"+userID)
}

func (s *DefaultAdminService) Loans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.api.Get(ctx, "/admins/loans", &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// UpdateLoanStatus requests a transition (approved, rejected, closed). The
// backend owns the state machine and rejects invalid transitions.
func (s *DefaultAdminService) UpdateLoanStatus(ctx context.Context, loanID, status string) (*models.Loan, error) {
	body := map[string]string{"status": status}
	var loan models.Loan
	if err := s.api.Put(ctx, "/admins/loans/"+loanID+"/status", body, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *DefaultAdminService) Collections(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.api.Get(ctx, "/admins/payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
