package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyPolicy fixes the block grid and the flat charge per complete block
type PenaltyPolicy struct {
	BlockDuration   time.Duration
	PenaltyPerBlock decimal.Decimal
}

// PenaltyBlock describes one complete penalty block of the timeline
type PenaltyBlock struct {
	Index      int       `json:"index"`
	DateLabel  string    `json:"date_label"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	StartLabel string    `json:"start_label"`
	EndLabel   string    `json:"end_label"`
}

// DailyBucket counts the blocks whose start falls on one calendar date
type DailyBucket struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Blocks int       `json:"blocks"`
}

// CalculationResult is the outcome of one penalty calculation
type CalculationResult struct {
	IsLate        bool            `json:"is_late"`
	WindowStart   time.Time       `json:"window_start"`
	BlockCount    int             `json:"block_count"`
	PenaltyTotal  decimal.Decimal `json:"penalty_total"`
	Principal     decimal.Decimal `json:"principal"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	InterestAdded decimal.Decimal `json:"interest_added"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	DailyBuckets  []DailyBucket   `json:"daily_buckets"`
	Timeline      []PenaltyBlock  `json:"timeline"`
}

// IsPenaltyCase reports whether receipts for this result use the late-payment layout.
// A late payment with no complete block is still a penalty case.
func (r *CalculationResult) IsPenaltyCase() bool {
	return r.IsLate
}
