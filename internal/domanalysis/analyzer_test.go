package domanalysis

import (
	"testing"

	"github.com/jonesrussell/testgen/internal/domain"
)

const sampleHTML = `
<div id="product-card" class="card product-card">
  <img class="product-image" src="/p.jpg" alt="Blue running shoe">
  <h1 id="product-name">Blue Runner 2000</h1>
  <button data-test-id="add-to-cart" aria-label="Add to cart">Add to cart</button>
  <span class="price-tag">$99</span>
</div>`

func findCandidate(t *testing.T, candidates []Candidate, selector string) Candidate {
	t.Helper()
	for _, c := range candidates {
		if c.Selector == selector {
			return c
		}
	}
	t.Fatalf("candidate %q not found in %v", selector, candidates)
	return Candidate{}
}

func TestAnalyze_ExtractsCandidates(t *testing.T) {
	a := New(nil)
	candidates, err := a.Analyze(sampleHTML)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	btn := findCandidate(t, candidates, "button[data-test-id='add-to-cart']")
	if btn.ElementType != domain.ElementInteractive {
		t.Errorf("button element type = %q, want interactive", btn.ElementType)
	}
	if btn.Description != "Add to cart" {
		t.Errorf("button description = %q", btn.Description)
	}
	if btn.Relationships == nil || btn.Relationships.Parent != "#product-card" {
		t.Errorf("button relationships = %+v, want parent #product-card", btn.Relationships)
	}

	name := findCandidate(t, candidates, "#product-name")
	if name.ElementType != domain.ElementContent {
		t.Errorf("heading element type = %q, want content", name.ElementType)
	}

	img := findCandidate(t, candidates, ".product-image")
	if img.Description != "Blue running shoe" {
		t.Errorf("image description = %q, want alt text", img.Description)
	}

	findCandidate(t, candidates, ".price-tag")
}

func TestAnalyze_DataTestIDRanksFirst(t *testing.T) {
	a := New(nil)
	candidates, err := a.Analyze(sampleHTML)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	if candidates[0].Selector != "button[data-test-id='add-to-cart']" {
		t.Errorf("first candidate = %q, want the data-test-id one", candidates[0].Selector)
	}
}

func TestAnalyze_ParentRecordsChildren(t *testing.T) {
	a := New(nil)
	candidates, err := a.Analyze(sampleHTML)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	card := findCandidate(t, candidates, "#product-card")
	if card.Relationships == nil {
		t.Fatal("expected relationships on container")
	}
	var hasName bool
	for _, child := range card.Relationships.Children {
		if child == "#product-name" {
			hasName = true
		}
	}
	if !hasName {
		t.Errorf("children = %v, want to include #product-name", card.Relationships.Children)
	}
}

func TestAnalyze_DeduplicatesAndCaps(t *testing.T) {
	a := New(nil)
	html := `<ul>`
	for i := 0; i < 80; i++ {
		html += `<li class="row-item">x</li>`
	}
	html += `</ul>`

	candidates, err := a.Analyze(html)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("expected 1 deduplicated candidate, got %d", len(candidates))
	}
	if candidates[0].Selector != ".row-item" {
		t.Errorf("candidate = %q, want .row-item", candidates[0].Selector)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := New(nil)
	candidates, err := a.Analyze("")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %v", candidates)
	}
}
