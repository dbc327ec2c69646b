package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/segyhp/loan-penalty/internal/config"
	"github.com/segyhp/loan-penalty/internal/domain"
	"github.com/segyhp/loan-penalty/internal/service"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate the penalty for a payment",
	Long: `Calculate whether a payment was late and the penalty it accrued.

Examples:
  # Paid at noon the day after the due date
  calc --principal 5,000 --due 2024-03-10 --pay-date 2024-03-11 --pay-time 12:00

  # Machine-readable output
  calc --principal 5000 --amount 6000 --due 2024-03-10 --pay-date 2024-03-13 --pay-time 09:00 --format json`,
	RunE: runCalc,
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the shareable text digest",
	RunE: func(cmd *cobra.Command, _ []string) error {
		receipt, err := buildReceipt(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), receipt.ShareText)
		return err
	},
}

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Print the official receipt",
	RunE: func(cmd *cobra.Command, _ []string) error {
		receipt, err := buildReceipt(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Receipt %s (%s)\n\n", receipt.ID, receipt.FileName)
		_, err = fmt.Fprintln(out, receipt.ReceiptText)
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{calcCmd, shareCmd, receiptCmd} {
		addLoanFlags(c.Flags())
		rootCmd.AddCommand(c)
	}
	calcCmd.Flags().String("format", "text", "output format: text or json")
}

func addLoanFlags(f *pflag.FlagSet) {
	f.String("principal", "", "loan principal; grouping commas allowed")
	f.String("rate", "", "interest rate in percent (default from DEFAULT_INTEREST_RATE)")
	f.String("amount", "", "principal plus interest; computed from principal and rate when empty")
	f.String("due", "", "due date (YYYY-MM-DD)")
	f.String("pay-date", "", "payment date (YYYY-MM-DD, default today)")
	f.String("pay-time", "", "payment time of day (HH:MM)")
	f.String("borrower", "", "borrower name")
	f.String("loan-date", "", "loan start date (YYYY-MM-DD)")
}

// requestFromFlags defaults the amount from principal and rate, and the payment date to today
func requestFromFlags(cmd *cobra.Command, svc *service.PenaltyService, c *config.Config) (*domain.ReceiptRequest, error) {
	f := cmd.Flags()
	get := func(name string) string {
		v, _ := f.GetString(name)
		return strings.TrimSpace(v)
	}

	request := &domain.ReceiptRequest{
		CalculateRequest: domain.CalculateRequest{
			Principal:    get("principal"),
			InterestRate: get("rate"),
			Amount:       get("amount"),
			DueDate:      get("due"),
			PaymentDate:  get("pay-date"),
			PaymentTime:  get("pay-time"),
		},
		BorrowerName: get("borrower"),
		LoanDate:     get("loan-date"),
	}

	if request.Amount == "" && request.Principal != "" {
		amount, err := svc.BaseAmount(request.Principal, request.InterestRate)
		if err != nil {
			return nil, err
		}
		if amount.IsPositive() {
			request.Amount = amount.String()
		}
	}

	if request.PaymentDate == "" {
		request.PaymentDate = time.Now().In(c.GetLocation()).Format(config.DateLayout)
	}

	return request, nil
}

func buildReceipt(cmd *cobra.Command) (*domain.Receipt, error) {
	svc := service.NewPenaltyServiceFromConfig(cfg)

	request, err := requestFromFlags(cmd, svc, cfg)
	if err != nil {
		return nil, err
	}

	receipt, err := svc.Receipt(cmd.Context(), request)
	if err != nil {
		return nil, eris.Wrap(err, "penaltycalc")
	}
	return receipt, nil
}

func runCalc(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return eris.Errorf("calc: --format must be text or json (got %q)", format)
	}

	receipt, err := buildReceipt(cmd)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), receipt.Result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, receipt.Summary)
	if receipt.Timeline != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, receipt.Timeline)
	}
	if receipt.DailySummary != "" {
		fmt.Fprintln(out)
		fmt.Fprint(out, receipt.DailySummary)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "calc: encode json")
	}
	return nil
}
