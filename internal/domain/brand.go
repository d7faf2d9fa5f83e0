package domain

import "time"

// BrandStatus is the lifecycle state of a brand.
type BrandStatus string

// Brand statuses.
const (
	BrandActive   BrandStatus = "active"
	BrandInactive BrandStatus = "inactive"
	BrandArchived BrandStatus = "archived"
)

// Brand is a storefront for which test scripts are generated.
// GlobalTemplate, when set, is the company-wide script skeleton every
// generated test must follow; page templates then only inform the
// page-specific section.
type Brand struct {
	ID             int         `db:"id"              json:"id"`
	Name           string      `db:"name"            json:"name"`
	Domain         string      `db:"domain"          json:"domain"`
	Status         BrandStatus `db:"status"          json:"status"`
	GlobalTemplate string      `db:"global_template" json:"global_template,omitempty"`
	CreatedAt      time.Time   `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"      json:"updated_at"`
}
