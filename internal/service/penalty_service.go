package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/segyhp/loan-penalty/internal/config"
	"github.com/segyhp/loan-penalty/internal/domain"
	customError "github.com/segyhp/loan-penalty/pkg/errors"
	"github.com/segyhp/loan-penalty/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PenaltyService validates raw form input at the boundary and runs the engine on it
type PenaltyService struct {
	engine    *PenaltyEngine
	receipts  *ReceiptFormatter
	config    *config.Config
	validator *validator.Validate
}

func NewPenaltyService(engine *PenaltyEngine, receipts *ReceiptFormatter, config *config.Config) *PenaltyService {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &PenaltyService{
		engine:    engine,
		receipts:  receipts,
		config:    config,
		validator: v,
	}
}

// NewPenaltyServiceFromConfig wires the engine and receipt formatter from configuration
func NewPenaltyServiceFromConfig(cfg *config.Config) *PenaltyService {
	engine := NewPenaltyEngine(domain.PenaltyPolicy{
		BlockDuration:   cfg.GetPenaltyBlockDuration(),
		PenaltyPerBlock: cfg.GetPenaltyPerBlock(),
	})
	receipts := NewReceiptFormatter(cfg.Business.CurrencySymbol, engine.Policy().PenaltyPerBlock, time.Now)
	return NewPenaltyService(engine, receipts, cfg)
}

// Calculate validates the request and returns the penalty calculation.
// Missing fields are reported together in one MISSING_INPUT error and nothing is computed.
func (s *PenaltyService) Calculate(ctx context.Context, request *domain.CalculateRequest) (*domain.CalculationResult, error) {
	input, err := s.parse(request)
	if err != nil {
		return nil, err
	}

	result := s.engine.Calculate(*input)

	zap.L().Debug("penalty calculated",
		zap.Time("due_date", input.DueDate),
		zap.Time("paid_at", input.PaidAt),
		zap.Bool("late", result.IsLate),
		zap.Int("blocks", result.BlockCount),
		zap.String("penalty_total", result.PenaltyTotal.String()),
	)

	return result, nil
}

// Receipt calculates and renders every receipt view for the request
func (s *PenaltyService) Receipt(ctx context.Context, request *domain.ReceiptRequest) (*domain.Receipt, error) {
	result, err := s.Calculate(ctx, &request.CalculateRequest)
	if err != nil {
		return nil, err
	}

	loanDate := strings.TrimSpace(request.LoanDate)
	if loanDate != "" {
		if _, err := s.parseDate("loan_date", loanDate); err != nil {
			return nil, err
		}
	}

	meta := domain.ReceiptMeta{
		BorrowerName: strings.TrimSpace(request.BorrowerName),
		Principal:    result.Principal,
		LoanDate:     loanDate,
		DueDate:      strings.TrimSpace(request.DueDate),
	}

	return s.receipts.Build(result, meta), nil
}

// BaseAmount returns principal plus interest at ratePercent; an empty rate uses the configured default
func (s *PenaltyService) BaseAmount(principal, ratePercent string) (decimal.Decimal, error) {
	p, err := s.parseAmount("principal", principal)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := s.parseRate(ratePercent)
	if err != nil {
		return decimal.Zero, err
	}
	return utils.CalculateBaseAmount(p, rate), nil
}

func (s *PenaltyService) parse(raw *domain.CalculateRequest) (*domain.LoanInput, error) {
	// Whitespace-only fields count as missing
	request := trimRequest(raw)

	// 1. Required fields
	if err := s.validator.Struct(request); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, customError.WrapInvalidInput("request", err)
		}
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fe.Field())
		}
		return nil, customError.WrapMissingInput(fields)
	}

	// 2. Amounts
	principal, err := s.parseAmount("principal", request.Principal)
	if err != nil {
		return nil, err
	}
	rate, err := s.parseRate(request.InterestRate)
	if err != nil {
		return nil, err
	}
	amount, err := s.parseAmount("amount", request.Amount)
	if err != nil {
		return nil, err
	}

	// 3. Dates
	dueDate, err := s.parseDate("due_date", request.DueDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.parseDate("payment_date", request.PaymentDate); err != nil {
		return nil, err
	}
	paidAt, err := utils.CombineDateTime(request.PaymentDate, request.PaymentTime, s.config.GetLocation())
	if err != nil {
		return nil, customError.WrapInvalidInput("payment_time", err)
	}
	if paidAt.Sub(WindowStart(dueDate)) > s.config.GetMaxLateSpan() {
		return nil, customError.WrapLateSpanExceeded("payment_date", s.config.Business.MaxLateSpan)
	}

	return &domain.LoanInput{
		Principal:    principal,
		InterestRate: rate,
		BaseAmount:   amount,
		DueDate:      dueDate,
		PaidAt:       paidAt,
	}, nil
}

func trimRequest(r *domain.CalculateRequest) *domain.CalculateRequest {
	return &domain.CalculateRequest{
		Principal:    strings.TrimSpace(r.Principal),
		InterestRate: strings.TrimSpace(r.InterestRate),
		Amount:       strings.TrimSpace(r.Amount),
		DueDate:      strings.TrimSpace(r.DueDate),
		PaymentDate:  strings.TrimSpace(r.PaymentDate),
		PaymentTime:  strings.TrimSpace(r.PaymentTime),
	}
}

func (s *PenaltyService) parseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, customError.WrapInvalidInput(field, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, customError.WrapInvalidInput(field, fmt.Errorf("must not be negative"))
	}
	return amount, nil
}

func (s *PenaltyService) parseRate(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return s.config.GetDefaultInterestRate(), nil
	}
	return s.parseAmount("interest_rate", raw)
}

func (s *PenaltyService) parseDate(field, raw string) (time.Time, error) {
	d, err := utils.ParseDate(raw, s.config.GetLocation())
	if err != nil {
		return time.Time{}, customError.WrapInvalidInput(field, err)
	}
	if d.Before(s.config.GetMinDate()) {
		return time.Time{}, customError.WrapDateOutOfRange(field, s.config.Business.MinDate)
	}
	return d, nil
}
