package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gemtrove/internal/domain"
	"gemtrove/internal/port"
)

type submissionRepo struct {
	db *sqlx.DB
}

// NewSubmissionRepo creates a new PostgreSQL-backed SubmissionRepository.
func NewSubmissionRepo(db *sqlx.DB) port.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	sub.CreatedAt = time.Now().UTC()

	query := `INSERT INTO submissions
		(id, name, description, category, city, latitude, longitude,
		 submitter_email, status, review_note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.Name, sub.Description, sub.Category, sub.City,
		sub.Latitude, sub.Longitude, sub.SubmitterEmail, sub.Status,
		sub.ReviewNote, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("submissionRepo.Create: %w", err)
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var sub domain.Submission
	err := r.db.GetContext(ctx, &sub, "SELECT * FROM submissions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("submissionRepo.GetByID: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepo) ListByStatus(ctx context.Context, status domain.SubmissionStatus, offset, limit int) ([]domain.Submission, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM submissions WHERE status = $1", status)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.ListByStatus count: %w", err)
	}

	var subs []domain.Submission
	err = r.db.SelectContext(ctx, &subs,
		`SELECT * FROM submissions WHERE status = $1
		 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.ListByStatus: %w", err)
	}
	return subs, total, nil
}

func (r *submissionRepo) Update(ctx context.Context, sub *domain.Submission) error {
	query := `UPDATE submissions SET
		status = $1, review_note = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		sub.Status, sub.ReviewNote, sub.ReviewedBy, sub.ReviewedAt, sub.ID)
	if err != nil {
		return fmt.Errorf("submissionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
