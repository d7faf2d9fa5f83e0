package domain

// ValidationStatus summarizes a code validation run.
type ValidationStatus string

// Validation statuses. Warning means the rule checks passed but one or more
// selector usages could not be confirmed against the catalog.
const (
	ValidationPassed  ValidationStatus = "passed"
	ValidationFailed  ValidationStatus = "failed"
	ValidationWarning ValidationStatus = "warning"
)

// Recommendation is the reviewer-facing verdict for generated code.
type Recommendation string

// Recommendations.
const (
	RecommendSafeToUse       Recommendation = "safe_to_use"
	RecommendReviewCarefully Recommendation = "review_carefully"
	RecommendNeedsFixes      Recommendation = "needs_fixes"
)

// ValidationResult lists the problems found in a piece of generated code.
// IsValid is true iff both lists are empty.
type ValidationResult struct {
	RuleViolations   []string `json:"rule_violations"`
	InvalidSelectors []string `json:"invalid_selectors"`
	IsValid          bool     `json:"is_valid"`
}

// ConfidenceBreakdown decomposes the confidence score for generated code.
// OverallScore is the clamp-to-[0,1] sum of the three sub-scores.
type ConfidenceBreakdown struct {
	OverallScore     float64          `json:"overall_score"`
	TemplateScore    float64          `json:"template_score"`
	RuleScore        float64          `json:"rule_score"`
	SelectorScore    float64          `json:"selector_score"`
	RuleViolations   []string         `json:"rule_violations"`
	InvalidSelectors []string         `json:"invalid_selectors"`
	IsValid          bool             `json:"is_valid"`
	ValidationStatus ValidationStatus `json:"validation_status"`
	Recommendation   Recommendation   `json:"recommendation"`
}
