package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gemtrove/internal/domain"
)

// MockMediaService is a mock implementation of service.MediaService.
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) ValidateImage(buf []byte, mimeType string) error {
	args := m.Called(buf, mimeType)
	return args.Error(0)
}

func (m *MockMediaService) UploadImage(ctx context.Context, buf []byte, originalName, mimeType string) (*domain.UploadResult, error) {
	args := m.Called(ctx, buf, originalName, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}

func (m *MockMediaService) DeleteImage(ctx context.Context, assetID string) bool {
	args := m.Called(ctx, assetID)
	return args.Bool(0)
}

func (m *MockMediaService) GetImage(ctx context.Context, filename string) (*domain.StoredImage, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredImage), args.Error(1)
}

func (m *MockMediaService) InspectImage(buf []byte, mimeType string) (*domain.ImageInfo, error) {
	args := m.Called(buf, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageInfo), args.Error(1)
}

func (m *MockMediaService) VariantURLs(ctx context.Context, assetID string) map[string]string {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]string)
}

func (m *MockMediaService) HealthCheck(ctx context.Context) domain.MediaHealth {
	args := m.Called(ctx)
	return args.Get(0).(domain.MediaHealth)
}
