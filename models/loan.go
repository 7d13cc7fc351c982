package models

import "time"

// Loan statuses the dashboards branch on. The backend owns the state machine;
// the client only displays and requests transitions.
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
	LoanStatusClosed   = "closed"
)

// Loan is a loan record as returned by the backend.
type Loan struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	Amount       float64   `json:"amount"`
	TermMonths   int       `json:"termMonths"`
	InterestRate float64   `json:"interestRate"`
	Purpose      string    `json:"purpose,omitempty"`
	Status       string    `json:"status"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoanApplication is the origination request submitted from the apply form.
type LoanApplication struct {
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"termMonths"`
	Purpose    string  `json:"purpose"`
}
