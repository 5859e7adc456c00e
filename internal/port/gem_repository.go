package port

import (
	"context"

	"github.com/google/uuid"

	"gemtrove/internal/domain"
)

// GemRepository defines persistence for gem listings.
type GemRepository interface {
	Create(ctx context.Context, gem *domain.Gem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gem, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Gem, error)
	List(ctx context.Context, status domain.GemStatus, offset, limit int) ([]domain.Gem, int, error)
	Update(ctx context.Context, gem *domain.Gem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
