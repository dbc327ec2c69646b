package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/segyhp/loan-penalty/internal/domain"
	"github.com/segyhp/loan-penalty/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	receiptRule = "------------------------------"
	shareRule   = "--------------------------"

	defaultReceiptBorrower = "Valued Customer"
	defaultShareBorrower   = "Customer"
)

// ReceiptFormatter renders a CalculationResult as text. It never modifies the result.
type ReceiptFormatter struct {
	currency string
	perBlock decimal.Decimal
	now      func() time.Time
}

func NewReceiptFormatter(currency string, perBlock decimal.Decimal, now func() time.Time) *ReceiptFormatter {
	if now == nil {
		now = time.Now
	}
	return &ReceiptFormatter{
		currency: currency,
		perBlock: perBlock,
		now:      now,
	}
}

func (f *ReceiptFormatter) money(d decimal.Decimal) string {
	return f.currency + utils.FormatAmount(d)
}

// Summary is the short on-screen status
func (f *ReceiptFormatter) Summary(result *domain.CalculationResult) string {
	if !result.IsPenaltyCase() {
		return fmt.Sprintf("Status: Paid on Time\nTotal: %s", f.money(result.BaseAmount))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Principal: %s\n", f.money(result.Principal))
	fmt.Fprintf(&b, "Interest Added: %s\n", f.money(result.InterestAdded))
	fmt.Fprintf(&b, "Penalty Blocks: %d\n", result.BlockCount)
	fmt.Fprintf(&b, "Penalty Total: %s\n", f.money(result.PenaltyTotal))
	fmt.Fprintf(&b, "Grand Total: %s", f.money(result.GrandTotal))
	return b.String()
}

// Timeline lists every complete block, or returns "" when there are none
func (f *ReceiptFormatter) Timeline(result *domain.CalculationResult) string {
	if len(result.Timeline) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Detailed Timeline (Full Breakdown)")
	for _, block := range result.Timeline {
		fmt.Fprintf(&b, "\nDay %d (%s): %s - %s +%s",
			block.Index, block.DateLabel, block.StartLabel, block.EndLabel, f.money(f.perBlock))
	}
	return b.String()
}

// DailySummary prints one line per calendar date with its block count and subtotal
func (f *ReceiptFormatter) DailySummary(result *domain.CalculationResult) string {
	var b strings.Builder
	for _, bucket := range result.DailyBuckets {
		subtotal := f.perBlock.Mul(decimal.NewFromInt(int64(bucket.Blocks)))
		fmt.Fprintf(&b, "%s: %d blocks (%s)\n", bucket.Label, bucket.Blocks, f.money(subtotal))
	}
	return b.String()
}

// ShareDigest is the plain-text message copied to the clipboard for sharing
func (f *ReceiptFormatter) ShareDigest(result *domain.CalculationResult, meta domain.ReceiptMeta) string {
	name := meta.BorrowerName
	if name == "" {
		name = defaultShareBorrower
	}

	var b strings.Builder
	b.WriteString("📌 *LENDING UPDATE*\n")
	fmt.Fprintf(&b, "👤 *Borrower:* %s\n", name)
	fmt.Fprintf(&b, "📅 *Date:* %s\n", f.now().Format("1/2/2006"))
	b.WriteString(shareRule + "\n")

	if result.IsPenaltyCase() {
		b.WriteString("⚠️ *STATUS: LATE PAYMENT*\n")
		b.WriteString(f.Summary(result))
		b.WriteString("\n\n📑 *FULL BREAKDOWN:*\n")
		b.WriteString(f.Timeline(result))
	} else {
		b.WriteString("✅ *STATUS: PAID ON TIME*\n")
		fmt.Fprintf(&b, "Total: %s", f.money(result.BaseAmount))
	}

	b.WriteString("\n" + shareRule + "\nThank you! 🙏")
	return b.String()
}

// ReceiptText is the body of the official receipt
func (f *ReceiptFormatter) ReceiptText(result *domain.CalculationResult, meta domain.ReceiptMeta) string {
	name := meta.BorrowerName
	if name == "" {
		name = defaultReceiptBorrower
	}

	var b strings.Builder
	b.WriteString("OFFICIAL RECEIPT\nLENDING SERVICES\n")
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Date: %s\n", f.now().Format("1/2/2006, 3:04:05 PM"))
	fmt.Fprintf(&b, "Borrower: %s\n", name)
	fmt.Fprintf(&b, "Loan Start: %s\n", meta.LoanDate)
	fmt.Fprintf(&b, "Payment Due: %s\n", meta.DueDate)
	fmt.Fprintf(&b, "Principal: %s\n", f.money(meta.Principal))
	fmt.Fprintf(&b, "Interest Amt: %s\n", f.money(result.BaseAmount.Sub(meta.Principal)))
	fmt.Fprintf(&b, "Base Total: %s\n", f.money(result.BaseAmount))
	b.WriteString(receiptRule + "\n")

	b.WriteString("PAYMENT SUMMARY:\n")
	if result.IsPenaltyCase() {
		b.WriteString(f.Summary(result))
	} else {
		fmt.Fprintf(&b, "Status: Paid on Time\nPenalty: %s\nGrand Total: %s",
			f.money(decimal.Zero), f.money(result.BaseAmount))
	}
	b.WriteString("\n" + receiptRule + "\n")

	if result.IsPenaltyCase() {
		b.WriteString("DAILY PENALTY SUMMARY:\n")
		b.WriteString(f.DailySummary(result))
		b.WriteString(receiptRule + "\n")
	}

	b.WriteString("THANK YOU!")
	return b.String()
}

// FileName is the download name of the rendered receipt image
func (f *ReceiptFormatter) FileName(meta domain.ReceiptMeta) string {
	name := meta.BorrowerName
	if name == "" {
		name = defaultReceiptBorrower
	}
	return fmt.Sprintf("Receipt_%s.png", utils.FileSafeName(name))
}

// Build renders every view of the result. IsPenalty travels with the receipt.
func (f *ReceiptFormatter) Build(result *domain.CalculationResult, meta domain.ReceiptMeta) *domain.Receipt {
	return &domain.Receipt{
		ID:           uuid.New(),
		IssuedAt:     f.now(),
		FileName:     f.FileName(meta),
		IsPenalty:    result.IsPenaltyCase(),
		Summary:      f.Summary(result),
		Timeline:     f.Timeline(result),
		DailySummary: f.DailySummary(result),
		ShareText:    f.ShareDigest(result, meta),
		ReceiptText:  f.ReceiptText(result, meta),
		Result:       result,
	}
}
