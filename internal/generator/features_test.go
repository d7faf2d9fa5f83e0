package generator

import (
	"strings"
	"testing"
	"time"
)

func TestExtractFeatures_KeywordClauses(t *testing.T) {
	desc := "Change the add to cart button color to green. Hide the promo banner on mobile. Track clicks on the hero image."
	features := ExtractFeatures(desc)

	if len(features) != 3 {
		t.Fatalf("expected 3 features, got %v", features)
	}
	if !strings.Contains(features[0], "Change the add to cart button") {
		t.Errorf("unexpected first feature %q", features[0])
	}
}

func TestExtractFeatures_ConjunctionFallback(t *testing.T) {
	desc := "new button styling and a bigger product image"
	features := ExtractFeatures(desc)
	if len(features) != 2 {
		t.Fatalf("expected 2 features, got %v", features)
	}
}

func TestExtractFeatures_SingleFallbackAndCap(t *testing.T) {
	features := ExtractFeatures("red checkout banner")
	if len(features) != 1 || features[0] != "red checkout banner" {
		t.Errorf("expected the description itself, got %v", features)
	}

	desc := strings.Repeat("change the thing. ", 10)
	if got := ExtractFeatures(desc); len(got) > 5 {
		t.Errorf("expected at most 5 features, got %d", len(got))
	}
}

func TestTestID(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"change checkout button color", "TE-CCB"},
		{"add to cart", "TE-AC"},
		{"", "TE-TEST"},
	}
	for _, tt := range tests {
		if got := TestID(tt.desc); got != tt.want {
			t.Errorf("TestID(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestSummary_Truncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Summary(long)
	if len(got) != 150 {
		t.Errorf("summary length = %d, want 150", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
}

func TestReplacePlaceholders(t *testing.T) {
	code := `/*
 * Test: {test_id}
 * Summary: {summary}
 * Version: {version}
 * Date: {date}
 * Features:
{features}
 */`
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	got := ReplacePlaceholders(code, "change checkout button color", now)

	if strings.Contains(got, "{") {
		t.Errorf("unreplaced placeholder remains:\n%s", got)
	}
	if !strings.Contains(got, "TE-CCB") {
		t.Errorf("expected test id in output:\n%s", got)
	}
	if !strings.Contains(got, "2026-08-26") {
		t.Errorf("expected date in output:\n%s", got)
	}
	if !strings.Contains(got, " * - change checkout button color") {
		t.Errorf("expected feature line in output:\n%s", got)
	}
}
