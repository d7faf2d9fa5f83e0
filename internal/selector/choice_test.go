package selector

import "testing"

func TestExtractChoice(t *testing.T) {
	tests := []struct {
		message string
		want    int
		wantOK  bool
	}{
		{"use selector 2", 2, true},
		{"Use option 3", 3, true},
		{"option 1 looks right", 1, true},
		{"number 4", 4, true},
		{"use 5", 5, true},
		{"2", 2, true},
		{"  3  ", 3, true},
		{"12", 12, true},
		{"123", 0, false},
		{"I don't know", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := ExtractChoice(tt.message)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractChoice(%q) = (%d, %v), want (%d, %v)",
					tt.message, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSelectorForChoice(t *testing.T) {
	options := "I found multiple selectors that might match:\n" +
		"1. Product name heading (selector: #product-name)\n" +
		"2. Product title block (selector: .product-title)\n" +
		"3. Add to cart button (selector: button[data-test-id='add-to-cart'])\n" +
		"Which selector should I use?"

	tests := []struct {
		name   string
		choice int
		want   string
	}{
		{"first option", 1, "#product-name"},
		{"second option", 2, ".product-title"},
		{"compound option", 3, "button[data-test-id='add-to-cart']"},
		{"missing option", 5, ""},
		{"zero choice", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectorForChoice(options, tt.choice); got != tt.want {
				t.Errorf("SelectorForChoice(_, %d) = %q, want %q", tt.choice, got, tt.want)
			}
		})
	}
}

func TestSelectorForChoice_BareLines(t *testing.T) {
	options := "1. #product-name\n2. .product-title"
	if got := SelectorForChoice(options, 2); got != ".product-title" {
		t.Errorf("got %q, want .product-title", got)
	}
}

func TestSelectorForChoice_IgnoresLongProse(t *testing.T) {
	long := "1. This numbered line is ordinary prose that happens to start with a number and runs well past the length bound used for bare selector lines in disambiguation messages."
	if got := SelectorForChoice(long, 1); got != "" {
		t.Errorf("expected no selector from prose line, got %q", got)
	}
}
