package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/testgen/internal/domain"
)

// BrandRepository handles database operations for brands.
type BrandRepository struct {
	db *sqlx.DB
}

// NewBrandRepository creates a new brand repository.
func NewBrandRepository(db *sqlx.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create inserts a new brand.
func (r *BrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (name, domain, status, global_template)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		brand.Name,
		brand.Domain,
		brand.Status,
		brand.GlobalTemplate,
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

// GetBrand retrieves a brand by its ID.
func (r *BrandRepository) GetBrand(ctx context.Context, id int) (*domain.Brand, error) {
	var brand domain.Brand
	query := `
		SELECT id, name, domain, status, global_template, created_at, updated_at
		FROM brands
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &brand, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("brand %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return &brand, nil
}

// List retrieves all brands, newest first.
func (r *BrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	query := `
		SELECT id, name, domain, status, global_template, created_at, updated_at
		FROM brands
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	return brands, nil
}

// Update rewrites the mutable fields of a brand.
func (r *BrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET name = $1, domain = $2, status = $3, global_template = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		brand.Name,
		brand.Domain,
		brand.Status,
		brand.GlobalTemplate,
		brand.ID,
	).Scan(&brand.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("brand %d: %w", brand.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}

	return nil
}

// Delete removes a brand and, via cascading constraints, its catalog.
func (r *BrandRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("brand %d: %w", id, ErrNotFound)
	}

	return nil
}
