package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/segyhp/loan-penalty/internal/domain"
	customError "github.com/segyhp/loan-penalty/pkg/errors"
	"github.com/segyhp/loan-penalty/pkg/response"

	"go.uber.org/zap"
)

// PenaltyCalculator is the part of the penalty service the HTTP layer needs
type PenaltyCalculator interface {
	Calculate(ctx context.Context, request *domain.CalculateRequest) (*domain.CalculationResult, error)
	Receipt(ctx context.Context, request *domain.ReceiptRequest) (*domain.Receipt, error)
}

// maxRequestBodyBytes bounds the JSON bodies the penalty routes decode
const maxRequestBodyBytes = 64 << 10

type PenaltyHandler struct {
	service PenaltyCalculator
}

func NewPenaltyHandler(service PenaltyCalculator) *PenaltyHandler {
	return &PenaltyHandler{
		service: service,
	}
}

// Calculate handles POST /api/v1/penalties/calculate
func (h *PenaltyHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var request domain.CalculateRequest
	if err := decodeBody(w, r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.Calculate(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, result)
}

// Receipt handles POST /api/v1/receipts
func (h *PenaltyHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	var request domain.ReceiptRequest
	if err := decodeBody(w, r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	receipt, err := h.service.Receipt(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, receipt)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *PenaltyHandler) writeError(w http.ResponseWriter, err error) {
	if be, ok := customError.AsBusinessError(err); ok {
		response.InputError(w, be.Code, be.Message, be.Fields)
		return
	}

	zap.L().Error("penalty calculation failed", zap.Error(err))
	response.InternalServerError(w, "Calculation failed", err)
}
