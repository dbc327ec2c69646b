package mocks

import (
	"context"

	"github.com/segyhp/loan-penalty/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPenaltyService struct {
	mock.Mock
}

func (m *MockPenaltyService) Calculate(ctx context.Context, request *domain.CalculateRequest) (*domain.CalculationResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationResult), args.Error(1)
}

func (m *MockPenaltyService) Receipt(ctx context.Context, request *domain.ReceiptRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

// NewMockPenaltyService creates a new mock penalty service instance
func NewMockPenaltyService() *MockPenaltyService {
	return &MockPenaltyService{}
}
