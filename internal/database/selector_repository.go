package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/testgen/internal/domain"
)

// SelectorRepository handles database operations for catalog selectors.
type SelectorRepository struct {
	db *sqlx.DB
}

// NewSelectorRepository creates a new selector repository.
func NewSelectorRepository(db *sqlx.DB) *SelectorRepository {
	return &SelectorRepository{db: db}
}

// Create inserts a new selector into the catalog.
func (r *SelectorRepository) Create(ctx context.Context, sel *domain.Selector) error {
	query := `
		INSERT INTO selectors (brand_id, page_type, selector, description, status, relationships)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		sel.BrandID,
		sel.PageType,
		sel.Selector,
		sel.Description,
		sel.Status,
		sel.Relationships,
	).Scan(&sel.ID, &sel.CreatedAt, &sel.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create selector: %w", err)
	}

	return nil
}

// GetByID retrieves a selector by its ID.
func (r *SelectorRepository) GetByID(ctx context.Context, id int) (*domain.Selector, error) {
	var sel domain.Selector
	query := `
		SELECT id, brand_id, page_type, selector, description, status, relationships,
		       created_at, updated_at
		FROM selectors
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &sel, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("selector %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get selector: %w", err)
	}

	return &sel, nil
}

// ListActiveSelectors retrieves the active selectors for a brand page. This
// is the catalog the resolution cascade matches against.
func (r *SelectorRepository) ListActiveSelectors(ctx context.Context, brandID int, pageType domain.PageType) ([]domain.Selector, error) {
	var selectors []domain.Selector
	query := `
		SELECT id, brand_id, page_type, selector, description, status, relationships,
		       created_at, updated_at
		FROM selectors
		WHERE brand_id = $1 AND page_type = $2 AND status = $3
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &selectors, query, brandID, pageType, domain.SelectorActive); err != nil {
		return nil, fmt.Errorf("failed to list selectors: %w", err)
	}

	return selectors, nil
}

// ListByBrand retrieves every selector for a brand regardless of status.
func (r *SelectorRepository) ListByBrand(ctx context.Context, brandID int) ([]domain.Selector, error) {
	var selectors []domain.Selector
	query := `
		SELECT id, brand_id, page_type, selector, description, status, relationships,
		       created_at, updated_at
		FROM selectors
		WHERE brand_id = $1
		ORDER BY page_type, id
	`

	if err := r.db.SelectContext(ctx, &selectors, query, brandID); err != nil {
		return nil, fmt.Errorf("failed to list selectors: %w", err)
	}

	return selectors, nil
}

// Update rewrites the mutable fields of a selector.
func (r *SelectorRepository) Update(ctx context.Context, sel *domain.Selector) error {
	query := `
		UPDATE selectors
		SET page_type = $1, selector = $2, description = $3, status = $4,
		    relationships = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		sel.PageType,
		sel.Selector,
		sel.Description,
		sel.Status,
		sel.Relationships,
		sel.ID,
	).Scan(&sel.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("selector %d: %w", sel.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update selector: %w", err)
	}

	return nil
}

// Delete removes a selector from the catalog.
func (r *SelectorRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM selectors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete selector: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete selector: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("selector %d: %w", id, ErrNotFound)
	}

	return nil
}
