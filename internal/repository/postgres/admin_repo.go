package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

type adminRepo struct {
	db *sqlx.DB
}

// NewAdminRepo creates a new PostgreSQL-backed AdminRepository.
func NewAdminRepo(db *sqlx.DB) port.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	err := r.db.GetContext(ctx, &admin, "SELECT * FROM admin_users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adminRepo.GetByID: %w", err)
	}
	return &admin, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	err := r.db.GetContext(ctx, &admin, "SELECT * FROM admin_users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adminRepo.GetByEmail: %w", err)
	}
	return &admin, nil
}
