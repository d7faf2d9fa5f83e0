package selector

import (
	"reflect"
	"testing"
)

func TestExtractExplicit(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "quoted id",
			message: `use the selector "#product-name" for this`,
			want:    []string{"#product-name"},
		},
		{
			name:    "quoted class",
			message: `change '.product-title' to red`,
			want:    []string{".product-title"},
		},
		{
			name:    "bare attribute selector",
			message: `try [data-test-id='add-to-cart'] on the page`,
			want:    []string{"[data-test-id='add-to-cart']"},
		},
		{
			name:    "compound outranks its attribute part",
			message: `use button[data-test-id='add-to-cart'] please`,
			want: []string{
				"button[data-test-id='add-to-cart']",
				"[data-test-id='add-to-cart']",
			},
		},
		{
			name:    "standalone class",
			message: "hide .promo-banner on mobile",
			want:    []string{".promo-banner"},
		},
		{
			name:    "tag dot class compound",
			message: "target div.product-title instead",
			want:    []string{"div.product-title"},
		},
		{
			name:    "specificity ordering across shapes",
			message: `Use "#product-name" or button[data-test-id='add'] or .price-tag`,
			want: []string{
				"button[data-test-id='add']",
				"[data-test-id='add']",
				"#product-name",
				".price-tag",
			},
		},
		{
			name:    "duplicates collapse to first occurrence",
			message: `use "#main" and then "#main" again`,
			want:    []string{"#main"},
		},
		{
			name:    "no selectors",
			message: "change the button color to blue",
			want:    nil,
		},
		{
			name:    "decimal in prose is not a compound selector",
			message: "roll out version 1.5 of the banner script",
			want:    nil,
		},
		{
			name:    "empty message",
			message: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractExplicit(tt.message)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractExplicit(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestExtractExplicit_FiltersInvalidSyntax(t *testing.T) {
	// An unbalanced attribute candidate must not survive validation.
	got := ExtractExplicit(`broken "[data-test-id='x]" here`)
	for _, s := range got {
		if !IsValidSyntax(s) {
			t.Errorf("returned invalid selector %q", s)
		}
	}
}
