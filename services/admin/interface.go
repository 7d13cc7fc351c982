package admin

import (
	"context"

	"lendhub/models"
)

// AdminService backs the staff dashboard: customer review, loan decisions,
// and the collections overview. Every call rides the admin session token.
type AdminService interface {
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	Loans(ctx context.Context) ([]models.Loan, error)
	UpdateLoanStatus(ctx context.Context, loanID, status string) (*models.Loan, error)
	Collections(ctx context.Context) ([]models.Payment, error)
}
