package user

import (
	"context"

	"lendhub/models"
)

// UserService is what the customer dashboard binds to: the signed-in user's
// profile and loans.
type UserService interface {
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.User, error)
	Loans(ctx context.Context) ([]models.Loan, error)
	Loan(ctx context.Context, loanID string) (*models.Loan, error)
	ApplyLoan(ctx context.Context, application models.LoanApplication) (*models.Loan, error)
}
