package port

import (
	"context"

	"gemtrove/internal/domain"
)

// UploadSlot is a short-lived, single-use upload authorization.
type UploadSlot struct {
	UploadURL string
	Token     string
}

// StoredFile identifies one file version held by the object store.
type StoredFile struct {
	FileID   string
	FileName string
}

// UploadFileInput encapsulates the parameters for one file upload.
type UploadFileInput struct {
	Slot        UploadSlot
	FileName    string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// ObjectStore abstracts the remote blob-storage service. Authorize is lazy
// and idempotent; every other operation requires an established session.
type ObjectStore interface {
	Authorize(ctx context.Context) error
	Initialized() bool
	GetUploadSlot(ctx context.Context, bucketID string) (*UploadSlot, error)
	Upload(ctx context.Context, input UploadFileInput) (*StoredFile, error)
	ListFiles(ctx context.Context, bucketID, prefix string, maxCount int) ([]StoredFile, error)
	DeleteFileVersion(ctx context.Context, fileID, fileName string) error
	ListBuckets(ctx context.Context) error
	DownloadByName(ctx context.Context, fileName string) (*domain.StoredImage, error)
}
