package domain

import "time"

// RuleType is the closed set of code-rule kinds.
type RuleType string

// Rule types.
const (
	RuleForbiddenPattern RuleType = "forbidden_pattern"
	RuleRequiredPattern  RuleType = "required_pattern"
	RuleMaxLength        RuleType = "max_length"
	RuleMinLength        RuleType = "min_length"
)

// Valid reports whether the rule type is one of the known values.
func (t RuleType) Valid() bool {
	switch t {
	case RuleForbiddenPattern, RuleRequiredPattern, RuleMaxLength, RuleMinLength:
		return true
	default:
		return false
	}
}

// CodeRule is a brand-scoped constraint applied to generated code.
type CodeRule struct {
	ID          int       `db:"id"           json:"id"`
	BrandID     int       `db:"brand_id"     json:"brand_id"`
	RuleType    RuleType  `db:"rule_type"    json:"rule_type"`
	RuleContent string    `db:"rule_content" json:"rule_content"`
	Priority    int       `db:"priority"     json:"priority"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
