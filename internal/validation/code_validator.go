// Package validation scores generated code: rule compliance, selector usage,
// confidence breakdown, and truncation detection. Everything here is pure and
// total; bad input produces a negative result, never an error.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonesrussell/testgen/internal/domain"
)

// Selector usage patterns in generated browser-side code.
var usagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`querySelector\(["']([^"']+)["']\)`),
	regexp.MustCompile(`querySelectorAll\(["']([^"']+)["']\)`),
	regexp.MustCompile(`getElementById\(["']([^"']+)["']\)`),
	regexp.MustCompile(`\.classList\[["']([^"']+)["']\]`),
}

// Bare quoted ".class" / "#id" literals.
var quotedSelectorRe = regexp.MustCompile(`["']([.#][\w-]+)["']`)

// ValidateCode checks generated code against brand rules and the approved
// selector catalog. Forbidden patterns are case-insensitive substring checks;
// required patterns must be present; length rules bound the code size. A
// selector usage is invalid only when it is neither an exact catalog match
// nor a substring/superstring of any catalog entry. The containment tolerance
// accepts generic names like ".button" when the catalog holds
// ".checkout-button", at the cost of letting short shared substrings slip
// through.
func ValidateCode(code string, rules []domain.CodeRule, selectors []domain.Selector) domain.ValidationResult {
	violations := checkRules(code, rules)
	invalid := checkSelectors(code, selectors)

	return domain.ValidationResult{
		RuleViolations:   violations,
		InvalidSelectors: invalid,
		IsValid:          len(violations) == 0 && len(invalid) == 0,
	}
}

func checkRules(code string, rules []domain.CodeRule) []string {
	var violations []string
	lowerCode := strings.ToLower(code)

	for _, rule := range rules {
		content := rule.RuleContent
		switch rule.RuleType {
		case domain.RuleForbiddenPattern:
			if content != "" && strings.Contains(lowerCode, strings.ToLower(content)) {
				violations = append(violations, fmt.Sprintf("Found forbidden pattern: %s", content))
			}
		case domain.RuleRequiredPattern:
			if content != "" && !strings.Contains(lowerCode, strings.ToLower(content)) {
				violations = append(violations, fmt.Sprintf("Missing required pattern: %s", content))
			}
		case domain.RuleMaxLength:
			if limit, err := strconv.Atoi(strings.TrimSpace(content)); err == nil && len(code) > limit {
				violations = append(violations, fmt.Sprintf("Code exceeds maximum length of %d characters", limit))
			}
		case domain.RuleMinLength:
			if limit, err := strconv.Atoi(strings.TrimSpace(content)); err == nil && len(code) < limit {
				violations = append(violations, fmt.Sprintf("Code is shorter than minimum length of %d characters", limit))
			}
		}
	}
	return violations
}

func checkSelectors(code string, selectors []domain.Selector) []string {
	used := extractUsedSelectors(code)
	if len(used) == 0 {
		return nil
	}

	available := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		available[s.Selector] = struct{}{}
	}

	var invalid []string
	for _, u := range used {
		normalized := strings.Trim(strings.TrimSpace(u), `"'`)
		if normalized == "" {
			continue
		}
		if _, ok := available[normalized]; ok {
			continue
		}
		if partialMatch(normalized, selectors) {
			continue
		}
		invalid = append(invalid, normalized)
	}
	return invalid
}

// extractUsedSelectors collects deduplicated selector literals from the code,
// in first-use order.
func extractUsedSelectors(code string) []string {
	seen := make(map[string]struct{})
	var used []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		used = append(used, s)
	}

	for _, re := range usagePatterns {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			add(m[1])
		}
	}
	for _, m := range quotedSelectorRe.FindAllStringSubmatch(code, -1) {
		add(m[1])
	}
	return used
}

func partialMatch(used string, selectors []domain.Selector) bool {
	for _, s := range selectors {
		if s.Selector == "" {
			continue
		}
		if strings.Contains(s.Selector, used) || strings.Contains(used, s.Selector) {
			return true
		}
	}
	return false
}
