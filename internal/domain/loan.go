package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanInput is the typed input of one penalty calculation
type LoanInput struct {
	Principal    decimal.Decimal
	InterestRate decimal.Decimal // percentage, e.g. 20 for 20%
	BaseAmount   decimal.Decimal // principal + interest, supplied by the caller
	DueDate      time.Time
	PaidAt       time.Time
}

// DTOs for requests and responses

// CalculateRequest carries the raw form fields. Amounts may contain grouping separators.
type CalculateRequest struct {
	Principal    string `json:"principal" validate:"required"`
	InterestRate string `json:"interest_rate"`
	Amount       string `json:"amount" validate:"required"`
	DueDate      string `json:"due_date" validate:"required"`
	PaymentDate  string `json:"payment_date" validate:"required"`
	PaymentTime  string `json:"payment_time" validate:"required"`
}

type ReceiptRequest struct {
	CalculateRequest
	BorrowerName string `json:"borrower_name"`
	LoanDate     string `json:"loan_date"`
}
