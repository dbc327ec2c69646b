package service

import (
	"time"

	"github.com/segyhp/loan-penalty/internal/domain"
	"github.com/segyhp/loan-penalty/pkg/utils"

	"github.com/shopspring/decimal"
)

// DefaultPenaltyPolicy charges 50 for every complete 5-hour block
func DefaultPenaltyPolicy() domain.PenaltyPolicy {
	return domain.PenaltyPolicy{
		BlockDuration:   5 * time.Hour,
		PenaltyPerBlock: decimal.NewFromInt(50),
	}
}

// PenaltyEngine turns a due date and a payment instant into accrued late penalties.
// It holds no state besides its policy and is safe for concurrent use.
type PenaltyEngine struct {
	policy domain.PenaltyPolicy
}

func NewPenaltyEngine(policy domain.PenaltyPolicy) *PenaltyEngine {
	if policy.BlockDuration <= 0 {
		policy.BlockDuration = DefaultPenaltyPolicy().BlockDuration
	}
	return &PenaltyEngine{policy: policy}
}

// Policy returns the engine's block grid and per-block charge
func (e *PenaltyEngine) Policy() domain.PenaltyPolicy {
	return e.policy
}

// WindowStart is midnight of the calendar day after dueDate, in dueDate's location
func WindowStart(dueDate time.Time) time.Time {
	y, m, d := dueDate.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, dueDate.Location())
}

// Compute counts the complete penalty blocks between the penalty window start and paidAt.
// Amount fields other than PenaltyTotal are left zero; see Calculate.
func (e *PenaltyEngine) Compute(dueDate, paidAt time.Time) *domain.CalculationResult {
	start := WindowStart(dueDate)

	result := &domain.CalculationResult{
		WindowStart:  start,
		PenaltyTotal: decimal.Zero,
		DailyBuckets: make([]domain.DailyBucket, 0),
		Timeline:     make([]domain.PenaltyBlock, 0),
	}

	// Paid on or before the window start
	if !paidAt.After(start) {
		return result
	}
	result.IsLate = true

	// Only complete blocks count; the trailing partial block is dropped
	buckets := make(map[string]int)
	for marker := start; !marker.Add(e.policy.BlockDuration).After(paidAt); marker = marker.Add(e.policy.BlockDuration) {
		next := marker.Add(e.policy.BlockDuration)
		result.BlockCount++

		label := utils.DateLabel(marker)
		idx, seen := buckets[label]
		if !seen {
			idx = len(result.DailyBuckets)
			buckets[label] = idx
			result.DailyBuckets = append(result.DailyBuckets, domain.DailyBucket{
				Date:  utils.StartOfDay(marker),
				Label: label,
			})
		}
		result.DailyBuckets[idx].Blocks++

		result.Timeline = append(result.Timeline, domain.PenaltyBlock{
			Index:      result.BlockCount,
			DateLabel:  label,
			Start:      marker,
			End:        next,
			StartLabel: utils.HourLabel(marker),
			EndLabel:   utils.HourLabel(next),
		})
	}

	result.PenaltyTotal = e.policy.PenaltyPerBlock.Mul(decimal.NewFromInt(int64(result.BlockCount)))
	return result
}

// Calculate runs Compute and fills in the amounts: GrandTotal = BaseAmount + PenaltyTotal
func (e *PenaltyEngine) Calculate(input domain.LoanInput) *domain.CalculationResult {
	result := e.Compute(input.DueDate, input.PaidAt)

	result.Principal = input.Principal
	result.BaseAmount = input.BaseAmount
	result.InterestAdded = input.BaseAmount.Sub(input.Principal)
	result.GrandTotal = input.BaseAmount.Add(result.PenaltyTotal)

	return result
}
