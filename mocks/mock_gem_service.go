package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gemtrove/internal/domain"
	"gemtrove/internal/service"
)

// MockGemService is a mock implementation of service.GemService.
type MockGemService struct {
	mock.Mock
}

func (m *MockGemService) Create(ctx context.Context, input service.GemInput) (*domain.Gem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gem), args.Error(1)
}

func (m *MockGemService) GetBySlug(ctx context.Context, slug string) (*domain.Gem, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gem), args.Error(1)
}

func (m *MockGemService) List(ctx context.Context, status domain.GemStatus, offset, limit int) ([]domain.Gem, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Gem), args.Int(1), args.Error(2)
}

func (m *MockGemService) Update(ctx context.Context, id uuid.UUID, input service.GemInput) (*domain.Gem, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gem), args.Error(1)
}

func (m *MockGemService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
