package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminInactive        = errors.New("admin account is inactive")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds maximum allowed size")
	ErrEmptyImage           = errors.New("image buffer is empty")
	ErrTranscodeFailed      = errors.New("image transcode failed")
	ErrUploadFailed         = errors.New("image upload to storage failed")
	ErrStoreUnavailable     = errors.New("object store unavailable")
	ErrMissingConfig        = errors.New("missing required configuration")
	ErrDuplicateSlug        = errors.New("gem slug already exists")
	ErrSubmissionReviewed   = errors.New("submission has already been reviewed")
)
