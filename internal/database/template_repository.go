package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/testgen/internal/domain"
)

// TemplateRepository handles database operations for test templates.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template.
func (r *TemplateRepository) Create(ctx context.Context, tpl *domain.Template) error {
	query := `
		INSERT INTO templates (brand_id, test_type, template_code, description, version, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		tpl.BrandID,
		tpl.TestType,
		tpl.TemplateCode,
		tpl.Description,
		tpl.Version,
		tpl.IsActive,
	).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(ctx context.Context, id int) (*domain.Template, error) {
	var tpl domain.Template
	query := `
		SELECT id, brand_id, test_type, template_code, description, version, is_active,
		       created_at, updated_at
		FROM templates
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &tpl, nil
}

// ListActiveTemplates retrieves a brand's active templates for a test type,
// newest version first.
func (r *TemplateRepository) ListActiveTemplates(ctx context.Context, brandID int, testType domain.TestType) ([]domain.Template, error) {
	var templates []domain.Template
	query := `
		SELECT id, brand_id, test_type, template_code, description, version, is_active,
		       created_at, updated_at
		FROM templates
		WHERE brand_id = $1 AND test_type = $2 AND is_active = true
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &templates, query, brandID, testType); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

// Update rewrites the mutable fields of a template.
func (r *TemplateRepository) Update(ctx context.Context, tpl *domain.Template) error {
	query := `
		UPDATE templates
		SET test_type = $1, template_code = $2, description = $3, version = $4,
		    is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		tpl.TestType,
		tpl.TemplateCode,
		tpl.Description,
		tpl.Version,
		tpl.IsActive,
		tpl.ID,
	).Scan(&tpl.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("template %d: %w", tpl.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update template: %w", err)
	}

	return nil
}

// Delete removes a template.
func (r *TemplateRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("template %d: %w", id, ErrNotFound)
	}

	return nil
}
