package port

import (
	"context"

	"github.com/google/uuid"

	"gemtrove/internal/domain"
)

// AdminRepository defines persistence for administrator accounts.
type AdminRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}
