package domain

import "time"

// TestType identifies the kind of test a template covers.
type TestType string

// Test types.
const (
	TestPDP      TestType = "pdp"
	TestCart     TestType = "cart"
	TestCheckout TestType = "checkout"
	TestHome     TestType = "home"
	TestCategory TestType = "category"
)

// Template is a brand-scoped reference script for a test type.
type Template struct {
	ID           int       `db:"id"            json:"id"`
	BrandID      int       `db:"brand_id"      json:"brand_id"`
	TestType     TestType  `db:"test_type"     json:"test_type"`
	TemplateCode string    `db:"template_code" json:"template_code"`
	Description  string    `db:"description"   json:"description,omitempty"`
	Version      string    `db:"version"       json:"version"`
	IsActive     bool      `db:"is_active"     json:"is_active"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}
