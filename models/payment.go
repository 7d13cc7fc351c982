package models

import "time"

// Payment is one installment or repayment record.
type Payment struct {
	ID        string    `json:"id"`
	LoanID    string    `json:"loanId"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"` // "card" or "bank"
	Status    string    `json:"status"`
	DueDate   time.Time `json:"dueDate,omitempty"`
	PaidAt    time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentRequest is a repayment submission. Idempotency is filled with a
// fresh UUID by the payment service when the caller leaves it empty.
type PaymentRequest struct {
	LoanID      string  `json:"loanId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Idempotency string  `json:"idempotencyKey"`
}
