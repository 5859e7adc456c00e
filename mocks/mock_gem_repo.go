package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gemtrove/internal/domain"
)

// MockGemRepo is a mock implementation of port.GemRepository.
type MockGemRepo struct {
	mock.Mock
}

func (m *MockGemRepo) Create(ctx context.Context, gem *domain.Gem) error {
	args := m.Called(ctx, gem)
	return args.Error(0)
}

func (m *MockGemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gem), args.Error(1)
}

func (m *MockGemRepo) GetBySlug(ctx context.Context, slug string) (*domain.Gem, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gem), args.Error(1)
}

func (m *MockGemRepo) List(ctx context.Context, status domain.GemStatus, offset, limit int) ([]domain.Gem, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Gem), args.Int(1), args.Error(2)
}

func (m *MockGemRepo) Update(ctx context.Context, gem *domain.Gem) error {
	args := m.Called(ctx, gem)
	return args.Error(0)
}

func (m *MockGemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
