package port

import (
	"context"

	"github.com/google/uuid"

	"gemtrove/internal/domain"
)

// SubmissionRepository defines persistence for the moderation queue.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListByStatus(ctx context.Context, status domain.SubmissionStatus, offset, limit int) ([]domain.Submission, int, error)
	Update(ctx context.Context, sub *domain.Submission) error
}
