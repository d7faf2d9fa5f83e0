package selector

import (
	"regexp"
	"sort"
	"strings"
)

// Extraction patterns for explicit CSS selectors in message text.
var (
	// "[data-test-id='product-name']" or '[data-test-id="product-name"]'
	quotedAttrRe = regexp.MustCompile(`["'](\[[\w-]+(?:[*^$|~]?=["'][^'"]*["']?)?\])["']`)
	// "#product-name" or ".product-title"
	quotedIDClassRe = regexp.MustCompile(`["']([.#][\w-]+)["']`)
	// [data-test-id='product-name'], [class*='product']
	attrRe = regexp.MustCompile(`\[[\w-]+(?:[*^$|~]?=["'][^'"]*["']?)?\]`)
	// standalone #product-name bounded by whitespace
	standaloneIDRe = regexp.MustCompile(`(?:^|\s)(#[a-zA-Z][\w-]*)(?:\s|$|[^a-zA-Z0-9_-])`)
	// standalone .product-title bounded by whitespace
	standaloneClassRe = regexp.MustCompile(`(?:^|\s)(\.[a-zA-Z][\w-]*)(?:\s|$|[^a-zA-Z0-9_-])`)
	// h1[data-test-id='name'], div.product-title. The leading letter keeps
	// decimals in prose ("version 1.5") from being read as tag.class forms.
	compoundRe = regexp.MustCompile(`[A-Za-z][\w-]*(?:\[[\w-]+(?:[*^$|~]?=["'][^'"]*["']?)?\]|[.#][\w-]+)`)

	wordStartRe = regexp.MustCompile(`^\w`)
)

// ExtractExplicit scans message text for explicit CSS-selector-like
// substrings. Results are deduplicated preserving first occurrence, ordered
// by specificity (compound > attribute > id/class), and filtered through
// syntax validation. An empty message yields nil.
func ExtractExplicit(message string) []string {
	if message == "" {
		return nil
	}

	var candidates []string

	for _, m := range quotedAttrRe.FindAllStringSubmatch(message, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range quotedIDClassRe.FindAllStringSubmatch(message, -1) {
		candidates = append(candidates, m[1])
	}

	// Unquoted attribute selectors; skip ones already captured inside quotes.
	for _, m := range attrRe.FindAllString(message, -1) {
		if !insideQuotes(message, m) {
			candidates = append(candidates, m)
		}
	}

	for _, m := range standaloneIDRe.FindAllStringSubmatch(message, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range standaloneClassRe.FindAllStringSubmatch(message, -1) {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, compoundRe.FindAllString(message, -1)...)

	// Deduplicate preserving first occurrence.
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	// Most specific first; stable so first-occurrence order breaks ties.
	sort.SliceStable(unique, func(i, j int) bool {
		return specificity(unique[i]) > specificity(unique[j])
	})

	validated := unique[:0]
	for _, c := range unique {
		if IsValidSyntax(c) {
			validated = append(validated, c)
		}
	}
	if len(validated) == 0 {
		return nil
	}
	return validated
}

// specificity ranks selector shapes: compound > attribute > id/class.
func specificity(s string) int {
	switch {
	case strings.Contains(s, "[") && (strings.HasPrefix(s, ".") || strings.HasPrefix(s, "#") || wordStartRe.MatchString(s)):
		return 3
	case strings.Contains(s, "["):
		return 2
	case strings.HasPrefix(s, "#") || strings.HasPrefix(s, "."):
		return 1
	default:
		return 0
	}
}

// insideQuotes reports whether the first occurrence of sub in message is
// immediately surrounded by quote characters.
func insideQuotes(message, sub string) bool {
	idx := strings.Index(message, sub)
	if idx < 0 {
		return false
	}
	var before, after byte
	if idx > 0 {
		before = message[idx-1]
	}
	end := idx + len(sub)
	if end < len(message) {
		after = message[end]
	}
	quoted := func(b byte) bool { return b == '"' || b == '\'' }
	return quoted(before) && quoted(after)
}
