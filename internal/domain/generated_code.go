package domain

import "time"

// GeneratedCode is a persisted generation result awaiting human review.
type GeneratedCode struct {
	ID               string               `db:"id"                json:"id"`
	BrandID          int                  `db:"brand_id"          json:"brand_id"`
	TestType         TestType             `db:"test_type"         json:"test_type"`
	Description      string               `db:"description"       json:"description"`
	Code             string               `db:"code"              json:"code"`
	ConfidenceScore  float64              `db:"confidence_score"  json:"confidence_score"`
	Breakdown        *ConfidenceBreakdown `db:"-"                 json:"confidence_breakdown,omitempty"`
	ValidationStatus ValidationStatus     `db:"validation_status" json:"validation_status"`
	Recommendation   Recommendation       `db:"recommendation"    json:"recommendation"`
	IsTruncated      bool                 `db:"is_truncated"      json:"is_truncated"`
	PromptTokens     int                  `db:"prompt_tokens"     json:"prompt_tokens"`
	CompletionTokens int                  `db:"completion_tokens" json:"completion_tokens"`
	CreatedAt        time.Time            `db:"created_at"        json:"created_at"`
}
