package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/loan-penalty/internal/domain"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func bucketSum(buckets []domain.DailyBucket) int {
	sum := 0
	for _, b := range buckets {
		sum += b.Blocks
	}
	return sum
}

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name     string
		dueDate  time.Time
		expected time.Time
	}{
		{name: "mid month", dueDate: date(2024, 3, 10, 0, 0), expected: date(2024, 3, 11, 0, 0)},
		{name: "due date carries a time of day", dueDate: date(2024, 3, 10, 18, 30), expected: date(2024, 3, 11, 0, 0)},
		{name: "end of month", dueDate: date(2024, 1, 31, 0, 0), expected: date(2024, 2, 1, 0, 0)},
		{name: "leap day", dueDate: date(2024, 2, 28, 0, 0), expected: date(2024, 2, 29, 0, 0)},
		{name: "end of year", dueDate: date(2024, 12, 31, 0, 0), expected: date(2025, 1, 1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WindowStart(tt.dueDate))
		})
	}
}

func TestPenaltyEngine_Compute(t *testing.T) {
	engine := NewPenaltyEngine(DefaultPenaltyPolicy())
	due := date(2024, 3, 10, 0, 0)

	tests := []struct {
		name            string
		paidAt          time.Time
		expectedLate    bool
		expectedBlocks  int
		expectedPenalty int64
		expectedBuckets []domain.DailyBucket
	}{
		{
			name:            "paid at 23:59 on the due date, before the window opens",
			paidAt:          date(2024, 3, 10, 23, 59),
			expectedLate:    false,
			expectedBlocks:  0,
			expectedPenalty: 0,
			expectedBuckets: []domain.DailyBucket{},
		},
		{
			name:            "paid exactly at window start",
			paidAt:          date(2024, 3, 11, 0, 0),
			expectedLate:    false,
			expectedBlocks:  0,
			expectedPenalty: 0,
			expectedBuckets: []domain.DailyBucket{},
		},
		{
			name:            "one second after window start is late without a block",
			paidAt:          date(2024, 3, 11, 0, 0).Add(time.Second),
			expectedLate:    true,
			expectedBlocks:  0,
			expectedPenalty: 0,
			expectedBuckets: []domain.DailyBucket{},
		},
		{
			name:            "one second short of a full block",
			paidAt:          date(2024, 3, 11, 5, 0).Add(-time.Second),
			expectedLate:    true,
			expectedBlocks:  0,
			expectedPenalty: 0,
			expectedBuckets: []domain.DailyBucket{},
		},
		{
			name:            "exactly one full block",
			paidAt:          date(2024, 3, 11, 5, 0),
			expectedLate:    true,
			expectedBlocks:  1,
			expectedPenalty: 50,
			expectedBuckets: []domain.DailyBucket{
				{Date: date(2024, 3, 11, 0, 0), Label: "03/11/24", Blocks: 1},
			},
		},
		{
			name:            "12 hours late truncates the partial block",
			paidAt:          date(2024, 3, 11, 12, 0),
			expectedLate:    true,
			expectedBlocks:  2,
			expectedPenalty: 100,
			expectedBuckets: []domain.DailyBucket{
				{Date: date(2024, 3, 11, 0, 0), Label: "03/11/24", Blocks: 2},
			},
		},
		{
			name:            "57 hours late spans three days",
			paidAt:          date(2024, 3, 13, 9, 0),
			expectedLate:    true,
			expectedBlocks:  11,
			expectedPenalty: 550,
			expectedBuckets: []domain.DailyBucket{
				{Date: date(2024, 3, 11, 0, 0), Label: "03/11/24", Blocks: 5},
				{Date: date(2024, 3, 12, 0, 0), Label: "03/12/24", Blocks: 5},
				{Date: date(2024, 3, 13, 0, 0), Label: "03/13/24", Blocks: 1},
			},
		},
		{
			name:            "81 hours after window start",
			paidAt:          date(2024, 3, 14, 9, 0),
			expectedLate:    true,
			expectedBlocks:  16,
			expectedPenalty: 800,
			expectedBuckets: []domain.DailyBucket{
				{Date: date(2024, 3, 11, 0, 0), Label: "03/11/24", Blocks: 5},
				{Date: date(2024, 3, 12, 0, 0), Label: "03/12/24", Blocks: 5},
				{Date: date(2024, 3, 13, 0, 0), Label: "03/13/24", Blocks: 5},
				{Date: date(2024, 3, 14, 0, 0), Label: "03/14/24", Blocks: 1},
			},
		},
		{
			name:            "paid well before the due date",
			paidAt:          date(2024, 3, 1, 9, 0),
			expectedLate:    false,
			expectedBlocks:  0,
			expectedPenalty: 0,
			expectedBuckets: []domain.DailyBucket{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Compute(due, tt.paidAt)

			assert.Equal(t, tt.expectedLate, result.IsLate)
			assert.Equal(t, tt.expectedLate, result.IsPenaltyCase())
			assert.Equal(t, tt.expectedBlocks, result.BlockCount)
			assert.True(t, result.PenaltyTotal.Equal(decimal.NewFromInt(tt.expectedPenalty)),
				"Expected %d, got %s", tt.expectedPenalty, result.PenaltyTotal.String())
			assert.Equal(t, tt.expectedBuckets, result.DailyBuckets)
			assert.Len(t, result.Timeline, tt.expectedBlocks)
			assert.Equal(t, date(2024, 3, 11, 0, 0), result.WindowStart)
		})
	}
}

func TestPenaltyEngine_Compute_Timeline(t *testing.T) {
	engine := NewPenaltyEngine(DefaultPenaltyPolicy())

	result := engine.Compute(date(2024, 3, 10, 0, 0), date(2024, 3, 12, 2, 0))
	require.Equal(t, 5, result.BlockCount)

	expected := []domain.PenaltyBlock{
		{Index: 1, DateLabel: "03/11/24", Start: date(2024, 3, 11, 0, 0), End: date(2024, 3, 11, 5, 0), StartLabel: "12 am", EndLabel: "5 am"},
		{Index: 2, DateLabel: "03/11/24", Start: date(2024, 3, 11, 5, 0), End: date(2024, 3, 11, 10, 0), StartLabel: "5 am", EndLabel: "10 am"},
		{Index: 3, DateLabel: "03/11/24", Start: date(2024, 3, 11, 10, 0), End: date(2024, 3, 11, 15, 0), StartLabel: "10 am", EndLabel: "3 pm"},
		{Index: 4, DateLabel: "03/11/24", Start: date(2024, 3, 11, 15, 0), End: date(2024, 3, 11, 20, 0), StartLabel: "3 pm", EndLabel: "8 pm"},
		// Spans midnight and stays on the start date
		{Index: 5, DateLabel: "03/11/24", Start: date(2024, 3, 11, 20, 0), End: date(2024, 3, 12, 1, 0), StartLabel: "8 pm", EndLabel: "1 am"},
	}
	assert.Equal(t, expected, result.Timeline)
	assert.Equal(t, []domain.DailyBucket{{Date: date(2024, 3, 11, 0, 0), Label: "03/11/24", Blocks: 5}}, result.DailyBuckets)
}

func TestPenaltyEngine_Compute_BlockCountMatchesFloor(t *testing.T) {
	engine := NewPenaltyEngine(DefaultPenaltyPolicy())
	due := date(2024, 6, 30, 0, 0)
	start := WindowStart(due)
	block := 5 * time.Hour

	// Sweep payment instants from 2 hours before the window to ~10 days after it
	for offset := -2 * time.Hour; offset <= 240*time.Hour; offset += 37 * time.Minute {
		paidAt := start.Add(offset)
		result := engine.Compute(due, paidAt)

		expectedBlocks := 0
		if offset > 0 {
			expectedBlocks = int(offset / block)
		}

		require.Equal(t, offset > 0, result.IsLate, "offset %s", offset)
		require.Equal(t, expectedBlocks, result.BlockCount, "offset %s", offset)
		require.True(t, result.PenaltyTotal.Equal(decimal.NewFromInt(int64(50*expectedBlocks))), "offset %s", offset)
		require.Equal(t, expectedBlocks, bucketSum(result.DailyBuckets), "offset %s", offset)
		require.Len(t, result.Timeline, expectedBlocks, "offset %s", offset)

		for i, b := range result.Timeline {
			require.Equal(t, i+1, b.Index)
			require.Equal(t, start.Add(time.Duration(i)*block), b.Start)
			require.False(t, b.End.After(paidAt))
		}
	}
}

func TestPenaltyEngine_Compute_BucketsInChronologicalOrder(t *testing.T) {
	engine := NewPenaltyEngine(DefaultPenaltyPolicy())

	result := engine.Compute(date(2024, 12, 29, 0, 0), date(2025, 1, 3, 0, 0))

	require.NotEmpty(t, result.DailyBuckets)
	for i := 1; i < len(result.DailyBuckets); i++ {
		assert.True(t, result.DailyBuckets[i].Date.After(result.DailyBuckets[i-1].Date))
	}
	assert.Equal(t, "12/30/24", result.DailyBuckets[0].Label)
	assert.Equal(t, "01/02/25", result.DailyBuckets[len(result.DailyBuckets)-1].Label)
	assert.Equal(t, result.BlockCount, bucketSum(result.DailyBuckets))
}

func TestPenaltyEngine_Compute_Idempotent(t *testing.T) {
	engine := NewPenaltyEngine(DefaultPenaltyPolicy())
	due, paidAt := date(2024, 3, 10, 0, 0), date(2024, 3, 13, 9, 0)

	first := engine.Compute(due, paidAt)
	second := engine.Compute(due, paidAt)

	assert.Equal(t, first, second)
}

func TestPenaltyEngine_CustomPolicy(t *testing.T) {
	engine := NewPenaltyEngine(domain.PenaltyPolicy{
		BlockDuration:   24 * time.Hour,
		PenaltyPerBlock: decimal.NewFromInt(100),
	})

	result := engine.Compute(date(2024, 3, 10, 0, 0), date(2024, 3, 13, 9, 0))

	assert.Equal(t, 2, result.BlockCount)
	assert.True(t, result.PenaltyTotal.Equal(decimal.NewFromInt(200)))
}

func TestNewPenaltyEngine_NonPositiveBlockFallsBackToDefault(t *testing.T) {
	engine := NewPenaltyEngine(domain.PenaltyPolicy{PenaltyPerBlock: decimal.NewFromInt(50)})

	assert.Equal(t, 5*time.Hour, engine.Policy().BlockDuration)
}

func TestPenaltyEngine_Calculate(t *testing.T) {
	engine := NewPenaltyEngine(DefaultPenaltyPolicy())

	tests := []struct {
		name               string
		input              domain.LoanInput
		expectedPenalty    decimal.Decimal
		expectedGrandTotal decimal.Decimal
		expectedInterest   decimal.Decimal
	}{
		{
			name: "on time",
			input: domain.LoanInput{
				Principal:    decimal.NewFromInt(5000),
				InterestRate: decimal.NewFromInt(20),
				BaseAmount:   decimal.NewFromInt(6000),
				DueDate:      date(2024, 3, 10, 0, 0),
				PaidAt:       date(2024, 3, 10, 23, 59),
			},
			expectedPenalty:    decimal.Zero,
			expectedGrandTotal: decimal.NewFromInt(6000),
			expectedInterest:   decimal.NewFromInt(1000),
		},
		{
			name: "late with two blocks",
			input: domain.LoanInput{
				Principal:    decimal.NewFromInt(5000),
				InterestRate: decimal.NewFromInt(20),
				BaseAmount:   decimal.NewFromInt(6000),
				DueDate:      date(2024, 3, 10, 0, 0),
				PaidAt:       date(2024, 3, 11, 12, 0),
			},
			expectedPenalty:    decimal.NewFromInt(100),
			expectedGrandTotal: decimal.NewFromInt(6100),
			expectedInterest:   decimal.NewFromInt(1000),
		},
		{
			name: "zero principal is not an error",
			input: domain.LoanInput{
				DueDate: date(2024, 3, 10, 0, 0),
				PaidAt:  date(2024, 3, 13, 9, 0),
			},
			expectedPenalty:    decimal.NewFromInt(550),
			expectedGrandTotal: decimal.NewFromInt(550),
			expectedInterest:   decimal.Zero,
		},
		{
			name: "base amount is taken as supplied",
			input: domain.LoanInput{
				Principal:    decimal.NewFromInt(5000),
				InterestRate: decimal.NewFromInt(20),
				BaseAmount:   decimal.RequireFromString("5500.25"),
				DueDate:      date(2024, 3, 10, 0, 0),
				PaidAt:       date(2024, 3, 11, 5, 0),
			},
			expectedPenalty:    decimal.NewFromInt(50),
			expectedGrandTotal: decimal.RequireFromString("5550.25"),
			expectedInterest:   decimal.RequireFromString("500.25"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Calculate(tt.input)

			assert.True(t, result.PenaltyTotal.Equal(tt.expectedPenalty),
				"Expected penalty %s, got %s", tt.expectedPenalty, result.PenaltyTotal)
			assert.True(t, result.GrandTotal.Equal(tt.expectedGrandTotal),
				"Expected grand total %s, got %s", tt.expectedGrandTotal, result.GrandTotal)
			assert.True(t, result.GrandTotal.Equal(result.BaseAmount.Add(result.PenaltyTotal)))
			assert.True(t, result.InterestAdded.Equal(tt.expectedInterest))
		})
	}
}
