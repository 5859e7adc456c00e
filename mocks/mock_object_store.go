package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

// MockObjectStore is a mock implementation of port.ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Authorize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStore) Initialized() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockObjectStore) GetUploadSlot(ctx context.Context, bucketID string) (*port.UploadSlot, error) {
	args := m.Called(ctx, bucketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadSlot), args.Error(1)
}

func (m *MockObjectStore) Upload(ctx context.Context, input port.UploadFileInput) (*port.StoredFile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredFile), args.Error(1)
}

func (m *MockObjectStore) ListFiles(ctx context.Context, bucketID, prefix string, maxCount int) ([]port.StoredFile, error) {
	args := m.Called(ctx, bucketID, prefix, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.StoredFile), args.Error(1)
}

func (m *MockObjectStore) DeleteFileVersion(ctx context.Context, fileID, fileName string) error {
	args := m.Called(ctx, fileID, fileName)
	return args.Error(0)
}

func (m *MockObjectStore) ListBuckets(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStore) DownloadByName(ctx context.Context, fileName string) (*domain.StoredImage, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredImage), args.Error(1)
}
