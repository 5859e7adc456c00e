package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gemtrove/internal/config"
	"gemtrove/internal/domain"
	"gemtrove/internal/port"
	"gemtrove/internal/service"
	"gemtrove/mocks"
)

func testB2Config() config.B2Config {
	return config.B2Config{
		KeyID:         "key",
		AppKey:        "secret",
		BucketID:      "bucket-id",
		BucketName:    "gemtrove-media",
		PublicBaseURL: "https://cdn.example.com",
	}
}

// jpegBytes encodes a flat-colored JPEG of the given dimensions.
func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestValidateImage_TooLarge(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	buf := make([]byte, 11*1024*1024)
	err := svc.ValidateImage(buf, "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
	store.AssertNotCalled(t, "Authorize", mock.Anything)
}

func TestValidateImage_EmptyBuffer(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	// Empty must win over every other rule, whatever the declared type.
	for _, mime := range []string{"image/jpeg", "image/png", "application/pdf", ""} {
		err := svc.ValidateImage(nil, mime)
		assert.ErrorIs(t, err, domain.ErrEmptyImage, "mime %q", mime)
	}
}

func TestValidateImage_UnsupportedType(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	err := svc.ValidateImage([]byte("GIF89a"), "image/gif")
	assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)
}

func TestUploadImage_Success(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("Authorize", mock.Anything).Return(nil)
	store.On("GetUploadSlot", mock.Anything, "bucket-id").
		Return(&port.UploadSlot{UploadURL: "https://pod.example.com/upload", Token: "tok"}, nil).Times(4)
	store.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadFileInput")).
		Return(&port.StoredFile{FileID: "fid", FileName: "fn"}, nil).Times(4)

	buf := jpegBytes(t, 300, 200)
	result, err := svc.UploadImage(context.Background(), buf, "cafe.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "cafe.jpg", result.OriginalName)
	assert.Equal(t, "image/jpeg", result.MimeType)
	assert.Len(t, result.URLs, 4)
	for _, name := range domain.VariantNames() {
		url, ok := result.URLs[name]
		assert.True(t, ok, "missing variant %s", name)
		assert.Contains(t, url, result.ID)
		assert.Contains(t, url, cfg.PublicBaseURL)
	}
	assert.Equal(t, cfg.PublicBaseURL+"/"+result.ID+".jpg", result.URLs[domain.VariantOriginal])
	assert.Equal(t, cfg.PublicBaseURL+"/"+result.ID+"_thumbnail.jpg", result.URLs[domain.VariantThumbnail])
	assert.False(t, result.UploadedAt.IsZero())

	store.AssertExpectations(t)
}

func TestUploadImage_ValidationStopsBeforeNetwork(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	buf := make([]byte, 11*1024*1024)
	result, err := svc.UploadImage(context.Background(), buf, "big.jpg", "image/jpeg")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
	store.AssertNotCalled(t, "Authorize", mock.Anything)
	store.AssertNotCalled(t, "GetUploadSlot", mock.Anything, mock.Anything)
}

func TestUploadImage_VariantFailureFailsWhole(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	storeErr := errors.New("upload failed: service_unavailable")
	store.On("Authorize", mock.Anything).Return(nil)
	store.On("GetUploadSlot", mock.Anything, "bucket-id").
		Return(&port.UploadSlot{UploadURL: "https://pod.example.com/upload", Token: "tok"}, nil)
	store.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadFileInput")).
		Return(nil, storeErr)

	result, err := svc.UploadImage(context.Background(), jpegBytes(t, 64, 64), "x.jpg", "image/jpeg")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, storeErr)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestUploadImage_AuthorizeFailure(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	authErr := errors.New("authorize failed: bad credentials")
	store.On("Authorize", mock.Anything).Return(authErr)

	result, err := svc.UploadImage(context.Background(), jpegBytes(t, 64, 64), "x.jpg", "image/jpeg")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, authErr)
	store.AssertNotCalled(t, "GetUploadSlot", mock.Anything, mock.Anything)
}

func TestDeleteImage_NothingStored(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("ListFiles", mock.Anything, "bucket-id", mock.AnythingOfType("string"), 10).
		Return([]port.StoredFile{}, nil).Times(4)

	ok := svc.DeleteImage(context.Background(), "5bd2c0f0-aaaa-bbbb-cccc-000000000001")
	assert.True(t, ok)
	store.AssertNotCalled(t, "DeleteFileVersion", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestDeleteImage_AllVariantsPresent(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	assetID := "5bd2c0f0-aaaa-bbbb-cccc-000000000002"
	for _, name := range domain.VariantNames() {
		prefix := domain.VariantPrefix(assetID, name)
		store.On("ListFiles", mock.Anything, "bucket-id", prefix, 10).
			Return([]port.StoredFile{{FileID: "fid-" + name, FileName: prefix + "jpg"}}, nil).Once()
		store.On("DeleteFileVersion", mock.Anything, "fid-"+name, prefix+"jpg").Return(nil).Once()
	}

	ok := svc.DeleteImage(context.Background(), assetID)
	assert.True(t, ok)
	store.AssertExpectations(t)
}

func TestDeleteImage_FindsNonDefaultExtensions(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	// Asset stored as png: prefix listing still resolves the real names.
	assetID := "5bd2c0f0-aaaa-bbbb-cccc-000000000003"
	for _, name := range domain.VariantNames() {
		prefix := domain.VariantPrefix(assetID, name)
		store.On("ListFiles", mock.Anything, "bucket-id", prefix, 10).
			Return([]port.StoredFile{{FileID: "fid-" + name, FileName: prefix + "png"}}, nil).Once()
		store.On("DeleteFileVersion", mock.Anything, "fid-"+name, prefix+"png").Return(nil).Once()
	}

	ok := svc.DeleteImage(context.Background(), assetID)
	assert.True(t, ok)
	store.AssertExpectations(t)
}

func TestDeleteImage_PerVariantFailureStillSucceeds(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("ListFiles", mock.Anything, "bucket-id", mock.AnythingOfType("string"), 10).
		Return(nil, errors.New("list files failed: timeout"))

	ok := svc.DeleteImage(context.Background(), "5bd2c0f0-aaaa-bbbb-cccc-000000000004")
	assert.True(t, ok)
}

func TestGetImage_NotFoundIsNil(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("DownloadByName", mock.Anything, "missing.jpg").Return(nil, domain.ErrNotFound)

	img, err := svc.GetImage(context.Background(), "missing.jpg")
	assert.NoError(t, err)
	assert.Nil(t, img)
}

func TestGetImage_StoreErrorPropagates(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("DownloadByName", mock.Anything, "x.jpg").
		Return(nil, domain.ErrStoreUnavailable)

	img, err := svc.GetImage(context.Background(), "x.jpg")
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestGetImage_Success(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	stored := &domain.StoredImage{
		Data:          []byte("bytes"),
		ContentType:   "image/jpeg",
		ContentLength: 5,
		ETag:          "abc123",
	}
	store.On("DownloadByName", mock.Anything, "a.jpg").Return(stored, nil)

	img, err := svc.GetImage(context.Background(), "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, stored, img)
}

func TestVariantURLs_RecoversStoredExtension(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	assetID := "5bd2c0f0-aaaa-bbbb-cccc-000000000005"
	store.On("ListFiles", mock.Anything, "bucket-id", assetID+".", 10).
		Return([]port.StoredFile{{FileID: "fid", FileName: assetID + ".png"}}, nil)

	urls := svc.VariantURLs(context.Background(), assetID)
	require.Len(t, urls, 4)
	assert.Equal(t, cfg.PublicBaseURL+"/"+assetID+".png", urls[domain.VariantOriginal])
	assert.Equal(t, cfg.PublicBaseURL+"/"+assetID+"_thumbnail.png", urls[domain.VariantThumbnail])
	assert.Equal(t, cfg.PublicBaseURL+"/"+assetID+"_medium.png", urls[domain.VariantMedium])
	assert.Equal(t, cfg.PublicBaseURL+"/"+assetID+"_large.png", urls[domain.VariantLarge])
}

func TestVariantURLs_NothingStored(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("ListFiles", mock.Anything, "bucket-id", mock.AnythingOfType("string"), 10).
		Return([]port.StoredFile{}, nil)

	assert.Nil(t, svc.VariantURLs(context.Background(), "5bd2c0f0-aaaa-bbbb-cccc-000000000006"))
}

func TestVariantURLs_StoreErrorIsNil(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("ListFiles", mock.Anything, "bucket-id", mock.AnythingOfType("string"), 10).
		Return(nil, errors.New("list files failed: timeout"))

	assert.Nil(t, svc.VariantURLs(context.Background(), "5bd2c0f0-aaaa-bbbb-cccc-000000000007"))
}

func TestInspectImage(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	buf := jpegBytes(t, 320, 240)
	info, err := svc.InspectImage(buf, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 320, info.Width)
	assert.Equal(t, 240, info.Height)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, len(buf), info.Size)
	assert.False(t, info.HasAlpha)
	assert.Equal(t, 3, info.Channels)
}

func TestInspectImage_RejectsInvalid(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	_, err := svc.InspectImage(nil, "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrEmptyImage)
}

func TestHealthCheck_Healthy(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("Authorize", mock.Anything).Return(nil)
	store.On("ListBuckets", mock.Anything).Return(nil)

	health := svc.HealthCheck(context.Background())
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Initialized)
	assert.Equal(t, "gemtrove-media", health.Bucket)
	assert.ElementsMatch(t, []string{"image/jpeg", "image/png", "image/webp"}, health.SupportedFormats)
	assert.Equal(t, int64(domain.MaxImageSizeBytes), health.MaxSizeBytes)
	assert.Equal(t, domain.VariantNames(), health.Variants)
}

func TestHealthCheck_ProbeFailure(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("Authorize", mock.Anything).Return(nil)
	store.On("ListBuckets", mock.Anything).Return(errors.New("list buckets failed: expired_auth_token"))
	store.On("Initialized").Return(true)

	health := svc.HealthCheck(context.Background())
	assert.Equal(t, "unhealthy", health.Status)
	assert.Contains(t, health.Error, "expired_auth_token")
}

func TestHealthCheck_AuthorizeFailure(t *testing.T) {
	store := new(mocks.MockObjectStore)
	cfg := testB2Config()
	svc := service.NewMediaService(store, &cfg)

	store.On("Authorize", mock.Anything).Return(errors.New("authorize failed: unauthorized"))
	store.On("Initialized").Return(false)

	health := svc.HealthCheck(context.Background())
	assert.Equal(t, "unhealthy", health.Status)
	assert.False(t, health.Initialized)
	assert.Contains(t, health.Error, "unauthorized")
}
