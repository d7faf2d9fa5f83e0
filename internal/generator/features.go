package generator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxFeatures      = 5
	maxFeatureLen    = 100
	maxSummaryLen    = 150
	minFragmentLen   = 10
	testIDPrefix     = "TE-"
	placeholderDateF = "2006-01-02"
)

// featureKeywords mark clauses of a test description that describe a change.
var featureKeywords = []string{
	"change", "modify", "update", "add", "remove", "highlight",
	"display", "show", "hide", "enable", "disable", "validate",
	"track", "measure", "improve", "enhance",
}

var sentenceSplitRe = regexp.MustCompile(`[.,;!?]\s+`)

// ExtractFeatures pulls up to five keyword-bearing clauses from the test
// description, falling back to splitting on conjunctions when no clause
// carries an action verb.
func ExtractFeatures(description string) []string {
	var features []string

	for _, sentence := range sentenceSplitRe.Split(description, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minFragmentLen {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range featureKeywords {
			if strings.Contains(lower, kw) {
				features = append(features, truncate(sentence, maxFeatureLen))
				break
			}
		}
	}

	if len(features) == 0 {
		switch {
		case strings.Contains(strings.ToLower(description), " and "):
			for _, part := range strings.Split(description, " and ") {
				if part = strings.TrimSpace(part); len(part) > minFragmentLen {
					features = append(features, truncate(part, maxFeatureLen))
				}
			}
		case strings.Contains(description, ","):
			for _, part := range strings.Split(description, ",") {
				if part = strings.TrimSpace(part); len(part) > minFragmentLen {
					features = append(features, truncate(part, maxFeatureLen))
				}
			}
		default:
			features = []string{truncate(description, maxFeatureLen)}
		}
	}

	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}
	return features
}

// TestID derives a short identifier like "TE-ATC" from the description's
// leading words.
func TestID(description string) string {
	words := strings.Fields(description)
	if len(words) > 3 {
		words = words[:3]
	}
	var acronym strings.Builder
	for _, w := range words {
		if len(w) > 2 {
			acronym.WriteString(strings.ToUpper(w[:1]))
		}
	}
	id := acronym.String()
	if len(id) > 5 {
		id = id[:5]
	}
	if id == "" {
		return testIDPrefix + "TEST"
	}
	return testIDPrefix + id
}

// Summary trims the description to a one-line summary.
func Summary(description string) string {
	s := strings.TrimSpace(description)
	if len(s) > maxSummaryLen {
		s = s[:maxSummaryLen-3] + "..."
	}
	return s
}

// ReplacePlaceholders fills the global-template placeholders the provider may
// have left in the code.
func ReplacePlaceholders(code, description string, now time.Time) string {
	features := ExtractFeatures(description)
	featureLines := make([]string, 0, len(features))
	for _, f := range features {
		featureLines = append(featureLines, fmt.Sprintf(" * - %s", f))
	}

	r := strings.NewReplacer(
		"{test_id}", TestID(description),
		"{summary}", Summary(description),
		"{version}", "1.0",
		"{date}", now.Format(placeholderDateF),
		"{features}", strings.Join(featureLines, "\n"),
	)
	return r.Replace(code)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
