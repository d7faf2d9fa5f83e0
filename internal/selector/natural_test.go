package selector

import "testing"

func TestExtractNatural(t *testing.T) {
	tests := []struct {
		name    string
		message string
		context []string
		want    string
		wantOK  bool
	}{
		{
			name:    "prefixed token passes through",
			message: "#promo-banner",
			want:    "#promo-banner",
			wantOK:  true,
		},
		{
			name:    "quoted prefixed token",
			message: `it's ".hero-image"`,
			want:    ".hero-image",
			wantOK:  true,
		},
		{
			name:    "labeled selector",
			message: "selector: #checkout-btn",
			want:    "#checkout-btn",
			wantOK:  true,
		},
		{
			name:    "id is phrasing",
			message: "the id is product-name",
			want:    "#product-name",
			wantOK:  true,
		},
		{
			name:    "id equals phrasing",
			message: "id=main-content",
			want:    "#main-content",
			wantOK:  true,
		},
		{
			name:    "class phrasing",
			message: "use class 'hero-banner'",
			want:    ".hero-banner",
			wantOK:  true,
		},
		{
			name:    "its with id context",
			message: "it's add-to-cart",
			context: []string{"what is the element id?"},
			want:    "#add-to-cart",
			wantOK:  true,
		},
		{
			name:    "its with class context",
			message: "it is main-banner",
			context: []string{"which css class does it have?"},
			want:    ".main-banner",
			wantOK:  true,
		},
		{
			name:    "bare hyphenated name with id context",
			message: "add-to-cart",
			context: []string{"please tell me the id of the element"},
			want:    "#add-to-cart",
			wantOK:  true,
		},
		{
			name:    "bare hyphenated name without context stays bare",
			message: "add-to-cart",
			want:    "add-to-cart",
			wantOK:  true,
		},
		{
			name:    "attribute selector fallback",
			message: "[data-product-id='123']",
			want:    "[data-product-id='123']",
			wantOK:  true,
		},
		{
			name:    "prose only",
			message: "change the button please",
			wantOK:  false,
		},
		{
			name:    "blank message",
			message: "   ",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractNatural(tt.message, tt.context)
			if ok != tt.wantOK {
				t.Fatalf("ExtractNatural(%q) ok = %v, want %v", tt.message, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractNatural(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestExtractNatural_GenericWordsIgnored(t *testing.T) {
	// Stop words must never be promoted to selector names.
	if got, ok := ExtractNatural("update the product title", nil); ok {
		t.Errorf("expected no match, got %q", got)
	}
}
