// Package payment wraps the backend's payment resource: the installment
// schedule a customer sees and the repayment submissions they make.
package payment

import (
	"context"
	"fmt"

	"lendhub/models"
	"lendhub/services/api"

	"github.com/google/uuid"
)

// PaymentService is what the payment screen binds to.
type PaymentService interface {
	Schedule(ctx context.Context, loanID string) ([]models.Payment, error)
	Submit(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
	History(ctx context.Context) ([]models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	api *api.Client
}

func NewDefaultPaymentService(client *api.Client) (*DefaultPaymentService, error) {
	if client == nil {
		return nil, fmt.Errorf("payment service initialization error: api client is nil")
	}
	return &DefaultPaymentService{api: client}, nil
}

func (s *DefaultPaymentService) Schedule(ctx context.Context, loanID string) ([]models.Payment, error) {
	var schedule []models.Payment
	if err := s.api.Get(ctx, "/loans/"+loanID+"/schedule", &schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Submit sends a repayment. A fresh idempotency key is generated when the
// caller left it empty, so a resubmitted form cannot double-charge.
func (s *DefaultPaymentService) Submit(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	if req.Idempotency == "" {
		req.Idempotency = uuid.NewString()
	}
	var p models.Payment
	if err := s.api.Post(ctx, "/payments", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DefaultPaymentService) History(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.api.Get(ctx, "/payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
