// Package domain defines the data model shared across the testgen service.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PageType identifies the storefront page a selector belongs to.
type PageType string

// Page types.
const (
	PagePDP      PageType = "pdp"
	PageCart     PageType = "cart"
	PageCheckout PageType = "checkout"
	PageHome     PageType = "home"
	PageCategory PageType = "category"
	PageSearch   PageType = "search"
)

// Valid reports whether the page type is one of the known values.
func (p PageType) Valid() bool {
	switch p {
	case PagePDP, PageCart, PageCheckout, PageHome, PageCategory, PageSearch:
		return true
	default:
		return false
	}
}

// SelectorStatus is the lifecycle state of a catalog selector.
type SelectorStatus string

// Selector statuses.
const (
	SelectorActive     SelectorStatus = "active"
	SelectorInactive   SelectorStatus = "inactive"
	SelectorDeprecated SelectorStatus = "deprecated"
)

// ElementType tags a catalog selector with the kind of element it targets.
type ElementType string

// Element types.
const (
	ElementInteractive ElementType = "interactive"
	ElementContent     ElementType = "content"
	ElementContainer   ElementType = "container"
	ElementData        ElementType = "data"
)

// SelectorRelationships carries optional structural metadata for a selector.
// It is stored as a JSONB column.
type SelectorRelationships struct {
	ElementType ElementType `json:"element_type,omitempty"`
	Parent      string      `json:"parent,omitempty"`
	Children    []string    `json:"children,omitempty"`
	Siblings    []string    `json:"siblings,omitempty"`
}

// Value implements driver.Valuer for JSONB storage.
func (r SelectorRelationships) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB storage.
func (r *SelectorRelationships) Scan(src any) error {
	if src == nil {
		*r = SelectorRelationships{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported relationships column type %T", src)
	}
	return json.Unmarshal(b, r)
}

// Selector is an admin-approved CSS selector in the per-brand catalog.
type Selector struct {
	ID            int                    `db:"id"            json:"id"`
	BrandID       int                    `db:"brand_id"      json:"brand_id"`
	PageType      PageType               `db:"page_type"     json:"page_type"`
	Selector      string                 `db:"selector"      json:"selector"`
	Description   string                 `db:"description"   json:"description,omitempty"`
	Status        SelectorStatus         `db:"status"        json:"status"`
	Relationships *SelectorRelationships `db:"relationships" json:"relationships,omitempty"`
	CreatedAt     time.Time              `db:"created_at"    json:"created_at"`
	UpdatedAt     time.Time              `db:"updated_at"    json:"updated_at"`
}
