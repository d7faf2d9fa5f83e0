package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/testgen/internal/domain"
)

// GeneratedCodeRepository persists generation results for human review.
type GeneratedCodeRepository struct {
	db *sqlx.DB
}

// NewGeneratedCodeRepository creates a new generated-code repository.
func NewGeneratedCodeRepository(db *sqlx.DB) *GeneratedCodeRepository {
	return &GeneratedCodeRepository{db: db}
}

// SaveGeneratedCode inserts a generation result. The confidence breakdown is
// stored alongside the scalar score as JSONB.
func (r *GeneratedCodeRepository) SaveGeneratedCode(ctx context.Context, code *domain.GeneratedCode) error {
	var breakdown []byte
	if code.Breakdown != nil {
		var err error
		breakdown, err = json.Marshal(code.Breakdown)
		if err != nil {
			return fmt.Errorf("failed to encode confidence breakdown: %w", err)
		}
	}

	query := `
		INSERT INTO generated_code (
			id, brand_id, test_type, description, code, confidence_score,
			confidence_breakdown, validation_status, recommendation,
			is_truncated, prompt_tokens, completion_tokens
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		code.ID,
		code.BrandID,
		code.TestType,
		code.Description,
		code.Code,
		code.ConfidenceScore,
		breakdown,
		code.ValidationStatus,
		code.Recommendation,
		code.IsTruncated,
		code.PromptTokens,
		code.CompletionTokens,
	).Scan(&code.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save generated code: %w", err)
	}

	return nil
}

// GetByID retrieves a generation result by its ID.
func (r *GeneratedCodeRepository) GetByID(ctx context.Context, id string) (*domain.GeneratedCode, error) {
	var code domain.GeneratedCode
	var breakdown []byte

	query := `
		SELECT id, brand_id, test_type, description, code, confidence_score,
		       confidence_breakdown, validation_status, recommendation,
		       is_truncated, prompt_tokens, completion_tokens, created_at
		FROM generated_code
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&code.ID,
		&code.BrandID,
		&code.TestType,
		&code.Description,
		&code.Code,
		&code.ConfidenceScore,
		&breakdown,
		&code.ValidationStatus,
		&code.Recommendation,
		&code.IsTruncated,
		&code.PromptTokens,
		&code.CompletionTokens,
		&code.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("generated code %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get generated code: %w", err)
	}

	if len(breakdown) > 0 {
		code.Breakdown = &domain.ConfidenceBreakdown{}
		if err := json.Unmarshal(breakdown, code.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode confidence breakdown: %w", err)
		}
	}

	return &code, nil
}

// ListByBrand retrieves recent generation results for a brand, newest first.
func (r *GeneratedCodeRepository) ListByBrand(ctx context.Context, brandID, limit int) ([]domain.GeneratedCode, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, brand_id, test_type, description, code, confidence_score,
		       confidence_breakdown, validation_status, recommendation,
		       is_truncated, prompt_tokens, completion_tokens, created_at
		FROM generated_code
		WHERE brand_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated code: %w", err)
	}
	defer rows.Close()

	var codes []domain.GeneratedCode
	for rows.Next() {
		var code domain.GeneratedCode
		var breakdown []byte
		if err := rows.Scan(
			&code.ID,
			&code.BrandID,
			&code.TestType,
			&code.Description,
			&code.Code,
			&code.ConfidenceScore,
			&breakdown,
			&code.ValidationStatus,
			&code.Recommendation,
			&code.IsTruncated,
			&code.PromptTokens,
			&code.CompletionTokens,
			&code.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generated code: %w", err)
		}
		if len(breakdown) > 0 {
			code.Breakdown = &domain.ConfidenceBreakdown{}
			if err := json.Unmarshal(breakdown, code.Breakdown); err != nil {
				return nil, fmt.Errorf("failed to decode confidence breakdown: %w", err)
			}
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generated code: %w", err)
	}

	return codes, nil
}
