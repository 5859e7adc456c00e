package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

// GemInput is the DTO for creating or updating a listing.
type GemInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	City        string     `json:"city" binding:"required"`
	Latitude    float64    `json:"latitude" binding:"required"`
	Longitude   float64    `json:"longitude" binding:"required"`
	ImageID     *uuid.UUID `json:"image_id"`
	Status      string     `json:"status"`
}

// GemService defines the listing management contract.
type GemService interface {
	Create(ctx context.Context, input GemInput) (*domain.Gem, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Gem, error)
	List(ctx context.Context, status domain.GemStatus, offset, limit int) ([]domain.Gem, int, error)
	Update(ctx context.Context, id uuid.UUID, input GemInput) (*domain.Gem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gemService struct {
	gemRepo port.GemRepository
	media   MediaService
}

// NewGemService creates a new GemService implementation.
func NewGemService(gemRepo port.GemRepository, media MediaService) GemService {
	return &gemService{gemRepo: gemRepo, media: media}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a listing name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *gemService) Create(ctx context.Context, input GemInput) (*domain.Gem, error) {
	status := domain.GemStatus(input.Status)
	if status == "" {
		status = domain.GemStatusDraft
	}

	gem := &domain.Gem{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        Slugify(input.Name),
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageID:     input.ImageID,
		Status:      status,
	}

	if err := s.gemRepo.Create(ctx, gem); err != nil {
		return nil, err
	}
	log.Printf("gemService.Create: created gem %s (%s)", gem.ID, gem.Slug)
	return gem, nil
}

// GetBySlug returns one listing with the cover asset's variant URL map
// attached. URL resolution is best-effort; a listing whose asset cannot be
// resolved still comes back, just without image_urls.
func (s *gemService) GetBySlug(ctx context.Context, slug string) (*domain.Gem, error) {
	gem, err := s.gemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if gem.ImageID != nil {
		gem.ImageURLs = s.media.VariantURLs(ctx, gem.ImageID.String())
	}
	return gem, nil
}

func (s *gemService) List(ctx context.Context, status domain.GemStatus, offset, limit int) ([]domain.Gem, int, error) {
	return s.gemRepo.List(ctx, status, offset, limit)
}

func (s *gemService) Update(ctx context.Context, id uuid.UUID, input GemInput) (*domain.Gem, error) {
	gem, err := s.gemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	gem.Name = input.Name
	gem.Slug = Slugify(input.Name)
	gem.Description = input.Description
	gem.Category = input.Category
	gem.City = input.City
	gem.Latitude = input.Latitude
	gem.Longitude = input.Longitude
	gem.ImageID = input.ImageID
	if input.Status != "" {
		gem.Status = domain.GemStatus(input.Status)
	}
	gem.UpdatedAt = time.Now().UTC()

	if err := s.gemRepo.Update(ctx, gem); err != nil {
		return nil, fmt.Errorf("gemService.Update: %w", err)
	}
	return gem, nil
}

// Delete removes the listing record; the cover asset's stored variants are
// cleaned up best-effort afterwards.
func (s *gemService) Delete(ctx context.Context, id uuid.UUID) error {
	gem, err := s.gemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.gemRepo.Delete(ctx, id); err != nil {
		return err
	}

	if gem.ImageID != nil {
		s.media.DeleteImage(ctx, gem.ImageID.String())
	}
	return nil
}
