package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gemtrove/internal/config"
	"gemtrove/internal/domain"
	"gemtrove/internal/port"
	"gemtrove/internal/transcode"
)

// maxVariantMatches bounds the list call used to resolve a variant's stored
// file versions during deletion.
const maxVariantMatches = 10

// MediaService defines the image ingestion, retrieval, and deletion contract.
type MediaService interface {
	ValidateImage(buf []byte, mimeType string) error
	UploadImage(ctx context.Context, buf []byte, originalName, mimeType string) (*domain.UploadResult, error)
	DeleteImage(ctx context.Context, assetID string) bool
	GetImage(ctx context.Context, filename string) (*domain.StoredImage, error)
	InspectImage(buf []byte, mimeType string) (*domain.ImageInfo, error)
	VariantURLs(ctx context.Context, assetID string) map[string]string
	HealthCheck(ctx context.Context) domain.MediaHealth
}

type mediaService struct {
	store port.ObjectStore
	cfg   *config.B2Config
}

// NewMediaService creates a new MediaService implementation.
func NewMediaService(store port.ObjectStore, cfg *config.B2Config) MediaService {
	return &mediaService{store: store, cfg: cfg}
}

// ValidateImage checks an uploaded buffer against size and format rules.
// It is a pure precondition; no transcode or network work happens here.
// An empty buffer is reported as empty, never as passing the size check.
func (s *mediaService) ValidateImage(buf []byte, mimeType string) error {
	if len(buf) == 0 {
		return domain.ErrEmptyImage
	}
	if int64(len(buf)) > domain.MaxImageSizeBytes {
		return domain.ErrImageTooLarge
	}
	if _, ok := domain.SupportedImageTypes[mimeType]; !ok {
		return domain.ErrUnsupportedImageType
	}
	return nil
}

func (s *mediaService) UploadImage(ctx context.Context, buf []byte, originalName, mimeType string) (*domain.UploadResult, error) {
	// Validation runs before authorize so a rejected upload issues no
	// network calls at all.
	if err := s.ValidateImage(buf, mimeType); err != nil {
		return nil, err
	}
	if err := s.store.Authorize(ctx); err != nil {
		return nil, err
	}

	assetID := uuid.New().String()
	ext := domain.SupportedImageTypes[mimeType]

	log.Printf("mediaService.UploadImage: asset %s (%s, %d bytes, %d variants)",
		assetID, mimeType, len(buf), len(domain.ImageVariants))

	urls := make([]string, len(domain.ImageVariants))
	g, gctx := errgroup.WithContext(ctx)
	for i, variant := range domain.ImageVariants {
		g.Go(func() error {
			data, err := transcode.Transcode(buf, variant, mimeType)
			if err != nil {
				return err
			}

			slot, err := s.store.GetUploadSlot(gctx, s.cfg.BucketID)
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
			}

			filename := domain.StoredFilename(assetID, variant.Name, ext)
			_, err = s.store.Upload(gctx, port.UploadFileInput{
				Slot:        *slot,
				FileName:    filename,
				Data:        data,
				ContentType: mimeType,
				Metadata:    map[string]string{"original-name": originalName},
			})
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
			}

			urls[i] = s.cfg.PublicBaseURL + "/" + filename
			return nil
		})
	}
	// All-or-nothing join. Variants that finished before a sibling failed
	// stay in the store; callers needing strict atomicity retry the whole
	// upload or reconcile out of band.
	if err := g.Wait(); err != nil {
		log.Printf("mediaService.UploadImage: asset %s failed: %v", assetID, err)
		return nil, err
	}

	urlMap := make(map[string]string, len(domain.ImageVariants))
	for i, variant := range domain.ImageVariants {
		urlMap[variant.Name] = urls[i]
	}

	return &domain.UploadResult{
		ID:           assetID,
		URLs:         urlMap,
		OriginalName: originalName,
		MimeType:     mimeType,
		UploadedAt:   time.Now().UTC(),
	}, nil
}

// variantDeleteOutcome records one variant's best-effort deletion attempt.
type variantDeleteOutcome struct {
	variant string
	deleted int
	err     error
}

// DeleteImage removes every stored variant of an asset. Each variant is
// attempted independently; missing files and per-file failures do not fail
// the call. Listing by the extension-agnostic name prefix resolves the real
// stored extension, so assets uploaded as png or webp are found too.
func (s *mediaService) DeleteImage(ctx context.Context, assetID string) bool {
	outcomes := make([]variantDeleteOutcome, len(domain.ImageVariants))

	var wg sync.WaitGroup
	for i, variant := range domain.ImageVariants {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := variantDeleteOutcome{variant: variant.Name}

			prefix := domain.VariantPrefix(assetID, variant.Name)
			files, err := s.store.ListFiles(ctx, s.cfg.BucketID, prefix, maxVariantMatches)
			if err != nil {
				out.err = err
				outcomes[i] = out
				return
			}

			for _, f := range files {
				if err := s.store.DeleteFileVersion(ctx, f.FileID, f.FileName); err != nil {
					out.err = err
					continue
				}
				out.deleted++
			}
			outcomes[i] = out
		}()
	}
	wg.Wait()

	for _, out := range outcomes {
		if out.err != nil {
			log.Printf("mediaService.DeleteImage: asset %s variant %s: %v", assetID, out.variant, out.err)
		}
	}
	return true
}

// GetImage fetches one stored file by name for re-serving. A file the store
// does not hold is a nil result, not an error.
func (s *mediaService) GetImage(ctx context.Context, filename string) (*domain.StoredImage, error) {
	img, err := s.store.DownloadByName(ctx, filename)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get image %q: %w", filename, err)
	}
	return img, nil
}

// VariantURLs rebuilds the public URL map for a stored asset. The stored
// extension is recovered by listing the original's name prefix, so the map
// matches whatever format the asset was uploaded as. An asset with nothing
// stored, or an unreachable store, yields nil.
func (s *mediaService) VariantURLs(ctx context.Context, assetID string) map[string]string {
	prefix := domain.VariantPrefix(assetID, domain.VariantOriginal)
	files, err := s.store.ListFiles(ctx, s.cfg.BucketID, prefix, maxVariantMatches)
	if err != nil {
		log.Printf("mediaService.VariantURLs: asset %s: %v", assetID, err)
		return nil
	}
	if len(files) == 0 {
		return nil
	}

	ext := files[0].FileName[strings.LastIndex(files[0].FileName, ".")+1:]
	urls := make(map[string]string, len(domain.ImageVariants))
	for _, variant := range domain.ImageVariants {
		urls[variant.Name] = s.cfg.PublicBaseURL + "/" + domain.StoredFilename(assetID, variant.Name, ext)
	}
	return urls
}

// InspectImage validates and decodes the buffer's headers without storing it.
func (s *mediaService) InspectImage(buf []byte, mimeType string) (*domain.ImageInfo, error) {
	if err := s.ValidateImage(buf, mimeType); err != nil {
		return nil, err
	}
	return transcode.Inspect(buf)
}

// HealthCheck probes object store connectivity and never fails its caller.
func (s *mediaService) HealthCheck(ctx context.Context) domain.MediaHealth {
	if err := s.store.Authorize(ctx); err != nil {
		return domain.MediaHealth{
			Status:      "unhealthy",
			Initialized: s.store.Initialized(),
			Error:       err.Error(),
		}
	}
	if err := s.store.ListBuckets(ctx); err != nil {
		return domain.MediaHealth{
			Status:      "unhealthy",
			Initialized: s.store.Initialized(),
			Error:       err.Error(),
		}
	}

	formats := make([]string, 0, len(domain.SupportedImageTypes))
	for mime := range domain.SupportedImageTypes {
		formats = append(formats, mime)
	}

	return domain.MediaHealth{
		Status:           "healthy",
		Initialized:      true,
		Bucket:           s.cfg.BucketName,
		SupportedFormats: formats,
		MaxSizeBytes:     domain.MaxImageSizeBytes,
		Variants:         domain.VariantNames(),
	}
}
