package validation

import (
	"strings"
	"testing"

	"github.com/jonesrussell/testgen/internal/domain"
)

func forbidden(content string) domain.CodeRule {
	return domain.CodeRule{BrandID: 1, RuleType: domain.RuleForbiddenPattern, RuleContent: content}
}

func catalogOf(selectors ...string) []domain.Selector {
	out := make([]domain.Selector, 0, len(selectors))
	for i, s := range selectors {
		out = append(out, domain.Selector{ID: i + 1, BrandID: 1, Selector: s, Status: domain.SelectorActive})
	}
	return out
}

func TestValidateCode_ForbiddenPattern(t *testing.T) {
	code := `(function() { eval("alert(1)"); })();`
	res := ValidateCode(code, []domain.CodeRule{forbidden("eval(")}, nil)

	if res.IsValid {
		t.Error("expected invalid result")
	}
	if len(res.RuleViolations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(res.RuleViolations))
	}
	if !strings.Contains(res.RuleViolations[0], "eval(") {
		t.Errorf("violation should name the pattern: %q", res.RuleViolations[0])
	}
}

func TestValidateCode_ForbiddenPatternCaseInsensitive(t *testing.T) {
	res := ValidateCode("document.InnerHTML = x;", []domain.CodeRule{forbidden("innerHTML")}, nil)
	if res.IsValid {
		t.Error("expected case-insensitive match to flag violation")
	}
}

func TestValidateCode_RequiredPattern(t *testing.T) {
	rule := domain.CodeRule{RuleType: domain.RuleRequiredPattern, RuleContent: "use strict"}

	res := ValidateCode(`'use strict'; doThing();`, []domain.CodeRule{rule}, nil)
	if !res.IsValid {
		t.Errorf("expected valid when required pattern present: %v", res.RuleViolations)
	}

	res = ValidateCode(`doThing();`, []domain.CodeRule{rule}, nil)
	if res.IsValid || len(res.RuleViolations) != 1 {
		t.Errorf("expected one violation for missing pattern, got %v", res.RuleViolations)
	}
}

func TestValidateCode_LengthRules(t *testing.T) {
	long := strings.Repeat("x", 50)
	maxRule := domain.CodeRule{RuleType: domain.RuleMaxLength, RuleContent: "10"}
	minRule := domain.CodeRule{RuleType: domain.RuleMinLength, RuleContent: "100"}

	res := ValidateCode(long, []domain.CodeRule{maxRule, minRule}, nil)
	if len(res.RuleViolations) != 2 {
		t.Fatalf("expected 2 violations, got %v", res.RuleViolations)
	}
}

func TestValidateCode_SelectorUsage(t *testing.T) {
	catalog := catalogOf(".product-title", "#product-name", "button[data-test-id='add-to-cart']")

	tests := []struct {
		name        string
		code        string
		wantInvalid []string
	}{
		{
			name: "exact catalog usage",
			code: `document.querySelector('.product-title').textContent = 'New';`,
		},
		{
			name: "getElementById usage",
			code: `document.getElementById('#product-name');`,
		},
		{
			name: "substring tolerance accepts generic class",
			code: `document.querySelector('.product');`,
		},
		{
			name: "superstring tolerance accepts extended selector",
			code: `document.querySelector('.product-title-wrapper');`,
		},
		{
			name:        "unknown selector flagged",
			code:        `document.querySelector('.totally-unknown');`,
			wantInvalid: []string{".totally-unknown"},
		},
		{
			name:        "bare quoted literal flagged",
			code:        `const sel = '#mystery-id'; use(sel);`,
			wantInvalid: []string{"#mystery-id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCode(tt.code, nil, catalog)
			if len(tt.wantInvalid) == 0 {
				if !res.IsValid {
					t.Errorf("expected valid, got invalid selectors %v", res.InvalidSelectors)
				}
				return
			}
			if res.IsValid {
				t.Fatal("expected invalid result")
			}
			if len(res.InvalidSelectors) != len(tt.wantInvalid) {
				t.Fatalf("invalid selectors = %v, want %v", res.InvalidSelectors, tt.wantInvalid)
			}
			for i := range tt.wantInvalid {
				if res.InvalidSelectors[i] != tt.wantInvalid[i] {
					t.Errorf("invalid[%d] = %q, want %q", i, res.InvalidSelectors[i], tt.wantInvalid[i])
				}
			}
		})
	}
}

func TestValidateCode_EmptyInputsAreValid(t *testing.T) {
	res := ValidateCode("", nil, nil)
	if !res.IsValid {
		t.Error("empty code with no rules should be valid")
	}
	if len(res.RuleViolations) != 0 || len(res.InvalidSelectors) != 0 {
		t.Errorf("expected empty lists, got %v / %v", res.RuleViolations, res.InvalidSelectors)
	}
}

func TestValidateCode_DeduplicatesUsages(t *testing.T) {
	code := `document.querySelector('.mystery');
document.querySelectorAll('.mystery');`
	res := ValidateCode(code, nil, catalogOf("#known"))
	if len(res.InvalidSelectors) != 1 {
		t.Errorf("expected deduplicated invalid selector, got %v", res.InvalidSelectors)
	}
}
