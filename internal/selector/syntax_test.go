package selector

import "testing"

func TestIsValidSyntax(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     bool
	}{
		{"id selector", "#product-name", true},
		{"class selector", ".product-title", true},
		{"attribute selector", "[data-test-id='add-to-cart']", true},
		{"tag selector", "h1", true},
		{"compound selector", "button[data-test-id='add-to-cart']", true},
		{"pseudo class", ":hover", true},
		{"universal", "*", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"html fragment", "<div>", false},
		{"braces", ".foo { color: red }", false},
		{"semicolon", ".foo;", false},
		{"unbalanced bracket", "[data-test-id='x'", false},
		{"unbalanced paren", ":not(.foo", false},
		{"unbalanced quote", "[data-test-id='x]", false},
		{"leading space trimmed", "  .product-title  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidSyntax(tt.selector); got != tt.want {
				t.Errorf("IsValidSyntax(%q) = %v, want %v", tt.selector, got, tt.want)
			}
		})
	}
}

func TestValidate_Kinds(t *testing.T) {
	tests := []struct {
		selector string
		want     Kind
	}{
		{"#product-name", KindID},
		{".product-title", KindClass},
		{"[data-test-id='x']", KindAttribute},
		{"button[data-test-id='x']", KindCompound},
		{"div.product-title", KindCompound},
		{"h1", KindTag},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			v := Validate(tt.selector)
			if !v.IsValid {
				t.Fatalf("Validate(%q).IsValid = false, want true", tt.selector)
			}
			if v.Kind != tt.want {
				t.Errorf("Validate(%q).Kind = %q, want %q", tt.selector, v.Kind, tt.want)
			}
		})
	}
}

func TestValidate_Empty(t *testing.T) {
	v := Validate("")
	if v.IsValid {
		t.Error("expected empty selector to be invalid")
	}
	if v.Error == "" {
		t.Error("expected an error reason for empty selector")
	}
	if v.Kind != KindUnknown {
		t.Errorf("expected unknown kind, got %q", v.Kind)
	}
}

func TestValidate_NormalizesWhitespace(t *testing.T) {
	v := Validate("  #product-name  ")
	if v.Normalized != "#product-name" {
		t.Errorf("Normalized = %q, want %q", v.Normalized, "#product-name")
	}
}

func TestValidate_InvalidCarriesError(t *testing.T) {
	v := Validate("<div class='x'>")
	if v.IsValid {
		t.Fatal("expected invalid")
	}
	if v.Error == "" {
		t.Error("expected error message on invalid selector")
	}
}
