package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/testgen/internal/domain"
)

// RuleRepository handles database operations for code rules.
type RuleRepository struct {
	db *sqlx.DB
}

// NewRuleRepository creates a new rule repository.
func NewRuleRepository(db *sqlx.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// Create inserts a new code rule.
func (r *RuleRepository) Create(ctx context.Context, rule *domain.CodeRule) error {
	query := `
		INSERT INTO code_rules (brand_id, rule_type, rule_content, priority)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rule.BrandID,
		rule.RuleType,
		rule.RuleContent,
		rule.Priority,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	return nil
}

// GetByID retrieves a rule by its ID.
func (r *RuleRepository) GetByID(ctx context.Context, id int) (*domain.CodeRule, error) {
	var rule domain.CodeRule
	query := `
		SELECT id, brand_id, rule_type, rule_content, priority, created_at, updated_at
		FROM code_rules
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rule %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return &rule, nil
}

// ListRules retrieves a brand's rules in priority order.
func (r *RuleRepository) ListRules(ctx context.Context, brandID int) ([]domain.CodeRule, error) {
	var rules []domain.CodeRule
	query := `
		SELECT id, brand_id, rule_type, rule_content, priority, created_at, updated_at
		FROM code_rules
		WHERE brand_id = $1
		ORDER BY priority DESC, id
	`

	if err := r.db.SelectContext(ctx, &rules, query, brandID); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	return rules, nil
}

// Update rewrites the mutable fields of a rule.
func (r *RuleRepository) Update(ctx context.Context, rule *domain.CodeRule) error {
	query := `
		UPDATE code_rules
		SET rule_type = $1, rule_content = $2, priority = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rule.RuleType,
		rule.RuleContent,
		rule.Priority,
		rule.ID,
	).Scan(&rule.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("rule %d: %w", rule.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update rule: %w", err)
	}

	return nil
}

// Delete removes a rule.
func (r *RuleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM code_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}

	return nil
}
