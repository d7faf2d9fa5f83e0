// Package selector provides CSS selector syntax checking and extraction of
// selector references from free-form user text.
package selector

import (
	"regexp"
	"strings"
)

// Kind classifies a selector by its leading syntax.
type Kind string

// Selector kinds.
const (
	KindID        Kind = "id"
	KindClass     Kind = "class"
	KindAttribute Kind = "attribute"
	KindCompound  Kind = "compound"
	KindTag       Kind = "tag"
	KindUnknown   Kind = "unknown"
)

// Validation is the detailed result of a syntax check. It is always populated;
// syntax checking never fails with an error.
type Validation struct {
	IsValid    bool   `json:"is_valid"`
	Kind       Kind   `json:"selector_type"`
	Normalized string `json:"normalized"`
	Error      string `json:"error,omitempty"`
}

var (
	validStartRe = regexp.MustCompile(`^[.#\[:\w*]`)
	invalidChars = regexp.MustCompile(`[<>{};]`)
	tagStartRe   = regexp.MustCompile(`^[a-zA-Z]`)
)

// IsValidSyntax reports whether a string is plausibly valid CSS selector
// syntax. It checks the leading character, rejects characters that cannot
// appear in a selector, and requires balanced brackets, parentheses, and
// quotes. It does not parse the selector against a grammar.
func IsValidSyntax(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	if !validStartRe.MatchString(s) {
		return false
	}

	if invalidChars.MatchString(s) {
		return false
	}

	if strings.Count(s, "[") != strings.Count(s, "]") {
		return false
	}
	if strings.Count(s, "(") != strings.Count(s, ")") {
		return false
	}
	if strings.Count(s, "'")%2 != 0 || strings.Count(s, `"`)%2 != 0 {
		return false
	}

	return true
}

// Validate checks selector syntax and classifies the selector kind.
// It is total: every input yields a Validation value.
func Validate(s string) Validation {
	if strings.TrimSpace(s) == "" {
		return Validation{
			IsValid:    false,
			Kind:       KindUnknown,
			Normalized: "",
			Error:      "selector is empty",
		}
	}

	normalized := strings.TrimSpace(s)

	kind := classify(normalized)
	valid := IsValidSyntax(normalized)

	v := Validation{
		IsValid:    valid,
		Kind:       kind,
		Normalized: normalized,
	}
	if !valid {
		v.Error = "invalid CSS selector syntax: " + normalized
	}
	return v
}

func classify(s string) Kind {
	switch {
	case strings.HasPrefix(s, "#"):
		return KindID
	case strings.HasPrefix(s, "."):
		return KindClass
	case strings.HasPrefix(s, "["):
		return KindAttribute
	case strings.Contains(s, "["),
		strings.Contains(s, ".") && !strings.HasPrefix(s, "."),
		strings.Contains(s, "#") && !strings.HasPrefix(s, "#"):
		return KindCompound
	case tagStartRe.MatchString(s):
		return KindTag
	default:
		return KindUnknown
	}
}
