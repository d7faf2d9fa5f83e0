package validation

import (
	"regexp"
	"strings"
)

// Endings that close a complete statement or block.
var validEndings = []string{"}", "});", "};", ");", ";"}

// Unclosed-call shapes that mark a cut-off tail when found in the last lines.
var incompletePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)observer\.observe\([^)]*$`),
	regexp.MustCompile(`addEventListener\([^)]*$`),
	regexp.MustCompile(`\.then\([^)]*$`),
	regexp.MustCompile(`function\s+\w+\([^)]*$`),
	regexp.MustCompile(`const\s+\w+\s*=\s*[^;{]+$`),
}

// tailWindow is how many trailing lines are scanned for unclosed calls.
const tailWindow = 3

// IsTruncated heuristically reports whether generated code was cut off
// mid-generation: a tail that closes nothing, unbalanced braces or
// parentheses, or an unclosed call in the last lines. Empty input is not
// truncated.
func IsTruncated(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false
	}

	if !endsProperly(trimmed) {
		lines := strings.Split(trimmed, "\n")
		last := strings.TrimRight(lines[len(lines)-1], " \t")
		if last != "" && !endsProperly(last) {
			return true
		}
	}

	if strings.Count(code, "{") != strings.Count(code, "}") {
		return true
	}
	if strings.Count(code, "(") != strings.Count(code, ")") {
		return true
	}

	lines := strings.Split(trimmed, "\n")
	start := len(lines) - tailWindow
	if start < 0 {
		start = 0
	}
	for _, line := range lines[start:] {
		for _, re := range incompletePatterns {
			if re.MatchString(line) {
				return true
			}
		}
	}

	return false
}

func endsProperly(s string) bool {
	for _, ending := range validEndings {
		if strings.HasSuffix(s, ending) {
			return true
		}
	}
	return false
}
