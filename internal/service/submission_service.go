package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

// SubmissionInput is the DTO for visitor-submitted listings.
type SubmissionInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	City           string  `json:"city" binding:"required"`
	Latitude       float64 `json:"latitude" binding:"required"`
	Longitude      float64 `json:"longitude" binding:"required"`
	SubmitterEmail string  `json:"submitter_email" binding:"required,email"`
}

// SubmissionService defines the moderation queue contract.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmissionInput) (*domain.Submission, error)
	ListPending(ctx context.Context, offset, limit int) ([]domain.Submission, int, error)
	Approve(ctx context.Context, id, reviewerID uuid.UUID, note string) (*domain.Gem, error)
	Reject(ctx context.Context, id, reviewerID uuid.UUID, note string) (*domain.Submission, error)
}

type submissionService struct {
	subRepo port.SubmissionRepository
	gems    GemService
}

// NewSubmissionService creates a new SubmissionService implementation.
func NewSubmissionService(subRepo port.SubmissionRepository, gems GemService) SubmissionService {
	return &submissionService{subRepo: subRepo, gems: gems}
}

func (s *submissionService) Submit(ctx context.Context, input SubmissionInput) (*domain.Submission, error) {
	sub := &domain.Submission{
		ID:             uuid.New(),
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		City:           input.City,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		SubmitterEmail: input.SubmitterEmail,
		Status:         domain.SubmissionStatusPending,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	log.Printf("submissionService.Submit: queued submission %s from %s", sub.ID, sub.SubmitterEmail)
	return sub, nil
}

func (s *submissionService) ListPending(ctx context.Context, offset, limit int) ([]domain.Submission, int, error) {
	return s.subRepo.ListByStatus(ctx, domain.SubmissionStatusPending, offset, limit)
}

// Approve materializes a pending submission into a draft gem listing.
func (s *submissionService) Approve(ctx context.Context, id, reviewerID uuid.UUID, note string) (*domain.Gem, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubmissionStatusPending {
		return nil, domain.ErrSubmissionReviewed
	}

	gem, err := s.gems.Create(ctx, GemInput{
		Name:        sub.Name,
		Description: sub.Description,
		Category:    sub.Category,
		City:        sub.City,
		Latitude:    sub.Latitude,
		Longitude:   sub.Longitude,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub.Status = domain.SubmissionStatusApproved
	sub.ReviewNote = note
	sub.ReviewedBy = &reviewerID
	sub.ReviewedAt = &now
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return gem, nil
}

func (s *submissionService) Reject(ctx context.Context, id, reviewerID uuid.UUID, note string) (*domain.Submission, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubmissionStatusPending {
		return nil, domain.ErrSubmissionReviewed
	}

	now := time.Now().UTC()
	sub.Status = domain.SubmissionStatusRejected
	sub.ReviewNote = note
	sub.ReviewedBy = &reviewerID
	sub.ReviewedAt = &now
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
