package resolver

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/matcher"
)

func newTestResolver() *Resolver {
	return New(matcher.New(matcher.DefaultConfig(), nil), nil)
}

func testCatalog() []domain.Selector {
	return []domain.Selector{
		{
			ID: 1, BrandID: 1, PageType: domain.PagePDP,
			Selector:    "button[data-test-id='add-to-cart']",
			Description: "Add to cart button",
			Status:      domain.SelectorActive,
		},
		{
			ID: 2, BrandID: 1, PageType: domain.PagePDP,
			Selector:    "#product-image",
			Description: "Product image",
			Status:      domain.SelectorActive,
		},
		{
			ID: 3, BrandID: 1, PageType: domain.PagePDP,
			Selector:    ".hero-image",
			Description: "Hero image banner",
			Status:      domain.SelectorActive,
		},
	}
}

func TestResolve_BlankDescriptionIsVacuouslyValid(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{ElementDescription: "  "}, testCatalog())

	if res.Status != domain.StatusNotFound {
		t.Errorf("status = %q, want not_found", res.Status)
	}
	if !res.IsValid {
		t.Error("expected IsValid for blank description")
	}
	if res.ResolvedSelector != "" {
		t.Errorf("unexpected selector %q", res.ResolvedSelector)
	}
}

func TestResolve_ExplicitSelectorInCatalog(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "the add to cart button",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        `use button[data-test-id='add-to-cart'] for this`,
	}, testCatalog())

	if res.Status != domain.StatusFoundInDB {
		t.Fatalf("status = %q, want found_in_db", res.Status)
	}
	if res.ResolvedSelector != "button[data-test-id='add-to-cart']" {
		t.Errorf("resolved = %q", res.ResolvedSelector)
	}
	if res.Source != domain.SourceDatabase {
		t.Errorf("source = %q, want database", res.Source)
	}
	if res.RequiresReview {
		t.Error("catalog hit must not require review")
	}
	if len(res.Matches) != 1 || res.Matches[0].MatchType != domain.MatchExact {
		t.Errorf("expected single exact match, got %+v", res.Matches)
	}
}

func TestResolve_ExplicitSelectorNotInCatalog(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "some element",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        `the selector is "#nonexistent-id"`,
	}, testCatalog())

	if res.Status != domain.StatusValidNotInDB {
		t.Fatalf("status = %q, want valid_but_not_in_db", res.Status)
	}
	if !res.IsValid || !res.RequiresReview {
		t.Errorf("IsValid = %v, RequiresReview = %v; want true, true", res.IsValid, res.RequiresReview)
	}
	if res.ResolvedSelector != "#nonexistent-id" {
		t.Errorf("resolved = %q, want #nonexistent-id", res.ResolvedSelector)
	}
	if res.Source != domain.SourceUserProvided {
		t.Errorf("source = %q, want user_provided", res.Source)
	}
	if !strings.Contains(res.Message, "#nonexistent-id") {
		t.Errorf("message should name the selector: %q", res.Message)
	}
}

func TestResolve_NaturalPhrasingNotInCatalog(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "the product name",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        "the id is product-name",
	}, testCatalog())

	if res.Status != domain.StatusValidNotInDB {
		t.Fatalf("status = %q, want valid_but_not_in_db", res.Status)
	}
	if res.ResolvedSelector != "#product-name" {
		t.Errorf("resolved = %q, want #product-name", res.ResolvedSelector)
	}
	if !res.RequiresReview {
		t.Error("phrased selector outside the catalog must require review")
	}
}

func TestResolve_BareTokenMatchesCatalog(t *testing.T) {
	r := newTestResolver()
	catalog := append(testCatalog(), domain.Selector{
		ID: 4, BrandID: 1, PageType: domain.PagePDP,
		Selector:    ".promo-banner",
		Description: "Promo banner",
		Status:      domain.SelectorActive,
	})

	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "promo banner",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        "promo-banner",
	}, catalog)

	if res.Status != domain.StatusFoundInDB {
		t.Fatalf("status = %q, want found_in_db", res.Status)
	}
	if res.ResolvedSelector != ".promo-banner" {
		t.Errorf("resolved = %q, want .promo-banner", res.ResolvedSelector)
	}
	if res.RequiresReview {
		t.Error("catalog hit must not require review")
	}
}

func TestResolve_BareTokenMissFallsThroughToFuzzy(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        "some-unknown-token",
	}, testCatalog())

	if res.Status != domain.StatusMultipleMatch {
		t.Errorf("status = %q, want multiple_matches from fuzzy fallback", res.Status)
	}
}

func TestResolve_FuzzySingleMatch(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "add to cart button",
		PageType:           domain.PagePDP,
		BrandID:            1,
	}, testCatalog())

	if res.Status != domain.StatusFoundInDB {
		t.Fatalf("status = %q, want found_in_db", res.Status)
	}
	if res.ResolvedSelector != "button[data-test-id='add-to-cart']" {
		t.Errorf("resolved = %q", res.ResolvedSelector)
	}
	if res.RequiresReview {
		t.Error("fuzzy catalog hit must not require review")
	}
}

func TestResolve_MultipleMatches(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
	}, testCatalog())

	if res.Status != domain.StatusMultipleMatch {
		t.Fatalf("status = %q, want multiple_matches", res.Status)
	}
	// Both image entries match on keywords; the add-to-cart entry rides in
	// on the data-test-id specificity bonus alone, right at the keyword
	// threshold.
	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(res.Matches))
	}
	if res.Matches[0].Selector.Selector != "#product-image" {
		t.Errorf("top match = %q, want #product-image", res.Matches[0].Selector.Selector)
	}
	for i := 1; i < len(res.Matches); i++ {
		if res.Matches[i].Confidence > res.Matches[i-1].Confidence {
			t.Error("matches not sorted by confidence")
		}
	}
	if !strings.Contains(res.Message, "1.") || !strings.Contains(res.Message, "2.") {
		t.Errorf("message should enumerate options: %q", res.Message)
	}
	if !strings.Contains(strings.ToLower(res.Message), "found multiple selectors") {
		t.Errorf("message missing disambiguation phrasing: %q", res.Message)
	}
}

func TestResolve_ChoiceFromPromptText(t *testing.T) {
	r := newTestResolver()
	catalog := testCatalog()

	// First pass produces the disambiguation prompt.
	first := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
	}, catalog)
	if first.Status != domain.StatusMultipleMatch {
		t.Fatalf("setup: status = %q", first.Status)
	}
	wantSelector := first.Matches[1].Selector.Selector

	second := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        "use selector 2",
		Context:            []string{first.Message},
	}, catalog)

	if second.Status != domain.StatusFoundInDB {
		t.Fatalf("status = %q, want found_in_db", second.Status)
	}
	if second.ResolvedSelector != wantSelector {
		t.Errorf("resolved = %q, want %q", second.ResolvedSelector, wantSelector)
	}
}

func TestResolve_ChoiceFromStructuredTurns(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        "2",
		Turns: []domain.ConversationTurn{
			{Role: domain.RoleUser, Content: "change the image"},
			{
				Role:           domain.RoleAssistant,
				Content:        "I found multiple selectors that might match",
				OfferedOptions: []string{"#product-image", ".hero-image"},
			},
		},
	}, testCatalog())

	if res.Status != domain.StatusFoundInDB {
		t.Fatalf("status = %q, want found_in_db", res.Status)
	}
	if res.ResolvedSelector != ".hero-image" {
		t.Errorf("resolved = %q, want .hero-image", res.ResolvedSelector)
	}
}

func TestResolve_InvalidChoice(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
		UserMessage:        "use selector 9",
	}, testCatalog())

	if res.Status != domain.StatusInvalidChoice {
		t.Fatalf("status = %q, want invalid_choice", res.Status)
	}
	if res.IsValid {
		t.Error("invalid choice must not be valid")
	}
	if !strings.Contains(res.Message, "between 1 and 3") {
		t.Errorf("message should state the valid range: %q", res.Message)
	}
}

func TestResolve_NotFoundWithHints(t *testing.T) {
	r := newTestResolver()
	// Without the data-test-id entry; its specificity bonus alone would keep
	// it above the keyword threshold for any description.
	catalog := testCatalog()[1:]
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "checkout total price",
		PageType:           domain.PagePDP,
		BrandID:            1,
	}, catalog)

	if res.Status != domain.StatusNotFound {
		t.Fatalf("status = %q, want not_found", res.Status)
	}
	if res.IsValid {
		t.Error("unmatched description must not be valid")
	}
	if !strings.Contains(res.Message, "Here are some selectors available") {
		t.Errorf("expected catalog hints in message: %q", res.Message)
	}
	if !strings.Contains(res.Message, ".hero-image") {
		t.Errorf("expected catalog selector in hints: %q", res.Message)
	}
}

func TestResolve_EmptyCatalog(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "add to cart button",
		PageType:           domain.PageCart,
		BrandID:            1,
	}, nil)

	if res.Status != domain.StatusNotFound {
		t.Fatalf("status = %q, want not_found", res.Status)
	}
	if !strings.Contains(res.Message, "No selectors are configured") {
		t.Errorf("expected empty-catalog guidance: %q", res.Message)
	}
	if !strings.Contains(res.Message, "Inspect") {
		t.Errorf("expected inspect-element instructions: %q", res.Message)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := newTestResolver()
	catalog := testCatalog()
	req := domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
	}

	first := r.Resolve(req, catalog)
	second := r.Resolve(req, catalog)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests must yield identical results")
	}
}

func TestOptions(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve(domain.ResolutionRequest{
		ElementDescription: "image",
		PageType:           domain.PagePDP,
		BrandID:            1,
	}, testCatalog())

	opts := Options(res)
	if len(opts) != len(res.Matches) {
		t.Fatalf("Options length = %d, want %d", len(opts), len(res.Matches))
	}
	for i, m := range res.Matches {
		if opts[i] != m.Selector.Selector {
			t.Errorf("Options[%d] = %q, want %q", i, opts[i], m.Selector.Selector)
		}
	}
	if Options(domain.ResolutionResult{}) != nil {
		t.Error("expected nil options for empty result")
	}
}
