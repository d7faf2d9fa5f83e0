package api

import (
	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/domanalysis"
)

// ValidateRequest represents a request to validate generated code against a
// brand's rules, catalog and templates.
type ValidateRequest struct {
	BrandID  int             `json:"brand_id"  binding:"required"`
	PageType domain.PageType `json:"page_type" binding:"required,oneof=pdp cart checkout home category search"`
	TestType domain.TestType `json:"test_type" binding:"required,oneof=pdp cart checkout home category"`
	Code     string          `json:"code"      binding:"required"`
}

// ValidateResponse represents a validation response.
type ValidateResponse struct {
	Validation  domain.ValidationResult    `json:"validation"`
	Confidence  domain.ConfidenceBreakdown `json:"confidence"`
	IsTruncated bool                       `json:"is_truncated"`
}

// GenerateRequest represents a code generation request.
type GenerateRequest struct {
	BrandID     int             `json:"brand_id"    binding:"required"`
	TestType    domain.TestType `json:"test_type"   binding:"required,oneof=pdp cart checkout home category"`
	PageType    domain.PageType `json:"page_type"   binding:"required,oneof=pdp cart checkout home category search"`
	Description string          `json:"description" binding:"required"`
}

// AnalyzeRequest represents a DOM analysis request.
type AnalyzeRequest struct {
	HTML string `json:"html" binding:"required"`
}

// AnalyzeResponse represents a DOM analysis response.
type AnalyzeResponse struct {
	Candidates []domanalysis.Candidate `json:"candidates"`
	Total      int                     `json:"total"`
}

// BrandRequest represents a request to create or update a brand.
type BrandRequest struct {
	Name           string             `json:"name"   binding:"required"`
	Domain         string             `json:"domain" binding:"required"`
	Status         domain.BrandStatus `json:"status" binding:"omitempty,oneof=active inactive archived"`
	GlobalTemplate string             `json:"global_template"`
}

// SelectorRequest represents a request to create or update a catalog selector.
type SelectorRequest struct {
	BrandID       int                           `json:"brand_id"  binding:"required"`
	PageType      domain.PageType               `json:"page_type" binding:"required,oneof=pdp cart checkout home category search"`
	Selector      string                        `json:"selector"  binding:"required"`
	Description   string                        `json:"description"`
	Status        domain.SelectorStatus         `json:"status" binding:"omitempty,oneof=active inactive deprecated"`
	Relationships *domain.SelectorRelationships `json:"relationships"`
}

// RuleRequest represents a request to create or update a code rule.
type RuleRequest struct {
	BrandID     int             `json:"brand_id"     binding:"required"`
	RuleType    domain.RuleType `json:"rule_type"    binding:"required,oneof=forbidden_pattern required_pattern max_length min_length"`
	RuleContent string          `json:"rule_content" binding:"required"`
	Priority    int             `json:"priority"`
}

// TemplateRequest represents a request to create or update a template.
type TemplateRequest struct {
	BrandID      int             `json:"brand_id"      binding:"required"`
	TestType     domain.TestType `json:"test_type"     binding:"required,oneof=pdp cart checkout home category"`
	TemplateCode string          `json:"template_code" binding:"required"`
	Description  string          `json:"description"`
	Version      string          `json:"version"`
	IsActive     *bool           `json:"is_active"`
}
