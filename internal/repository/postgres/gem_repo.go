package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

type gemRepo struct {
	db *sqlx.DB
}

// NewGemRepo creates a new PostgreSQL-backed GemRepository.
func NewGemRepo(db *sqlx.DB) port.GemRepository {
	return &gemRepo{db: db}
}

func (r *gemRepo) Create(ctx context.Context, gem *domain.Gem) error {
	now := time.Now().UTC()
	gem.CreatedAt = now
	gem.UpdatedAt = now

	query := `INSERT INTO gems
		(id, name, slug, description, category, city, latitude, longitude,
		 image_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		gem.ID, gem.Name, gem.Slug, gem.Description, gem.Category, gem.City,
		gem.Latitude, gem.Longitude, gem.ImageID, gem.Status, gem.CreatedAt, gem.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("gemRepo.Create: %w", err)
	}
	return nil
}

func (r *gemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gem, error) {
	var gem domain.Gem
	err := r.db.GetContext(ctx, &gem, "SELECT * FROM gems WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gemRepo.GetByID: %w", err)
	}
	return &gem, nil
}

func (r *gemRepo) GetBySlug(ctx context.Context, slug string) (*domain.Gem, error) {
	var gem domain.Gem
	err := r.db.GetContext(ctx, &gem, "SELECT * FROM gems WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gemRepo.GetBySlug: %w", err)
	}
	return &gem, nil
}

func (r *gemRepo) List(ctx context.Context, status domain.GemStatus, offset, limit int) ([]domain.Gem, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM gems WHERE status = $1", status)
	if err != nil {
		return nil, 0, fmt.Errorf("gemRepo.List count: %w", err)
	}

	var gems []domain.Gem
	err = r.db.SelectContext(ctx, &gems,
		`SELECT * FROM gems WHERE status = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("gemRepo.List: %w", err)
	}
	return gems, total, nil
}

func (r *gemRepo) Update(ctx context.Context, gem *domain.Gem) error {
	query := `UPDATE gems SET
		name = $1, slug = $2, description = $3, category = $4, city = $5,
		latitude = $6, longitude = $7, image_id = $8, status = $9, updated_at = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		gem.Name, gem.Slug, gem.Description, gem.Category, gem.City,
		gem.Latitude, gem.Longitude, gem.ImageID, gem.Status, gem.UpdatedAt, gem.ID)
	if err != nil {
		return fmt.Errorf("gemRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *gemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM gems WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("gemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
