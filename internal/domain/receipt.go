package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptMeta is the loan metadata printed on a receipt next to the calculation
type ReceiptMeta struct {
	BorrowerName string
	Principal    decimal.Decimal
	LoanDate     string
	DueDate      string
}

// Receipt bundles every rendering of one calculation
type Receipt struct {
	ID           uuid.UUID          `json:"id"`
	IssuedAt     time.Time          `json:"issued_at"`
	FileName     string             `json:"file_name"`
	IsPenalty    bool               `json:"is_penalty"`
	Summary      string             `json:"summary"`
	Timeline     string             `json:"timeline"`
	DailySummary string             `json:"daily_summary"`
	ShareText    string             `json:"share_text"`
	ReceiptText  string             `json:"receipt_text"`
	Result       *CalculationResult `json:"result"`
}
