package resolver

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/testgen/internal/domain"
)

// maxShownSelectors bounds the catalog hints included in a not-found message.
const maxShownSelectors = 5

// describedScanWindow is how many catalog entries are scanned for described
// ones before falling back to undescribed entries.
const describedScanWindow = 10

func userProvidedMessage(sel string) string {
	return fmt.Sprintf("Using selector '%s' (not in database, will be flagged for admin review)", sel)
}

func invalidChoiceMessage(count int) string {
	return fmt.Sprintf("I only found %d selectors. Please choose a number between 1 and %d.", count, count)
}

// multipleMatchesMessage enumerates candidates and asks the user to pick.
// The "found multiple selectors" / "Which selector should I use?" phrasing is
// load-bearing: lastDisambiguationPrompt matches on it when the caller only
// keeps flat message history.
func multipleMatchesMessage(description string, matches []domain.SelectorMatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found multiple selectors that might match %q:\n\n", description)

	limit := len(matches)
	if limit > maxShownSelectors {
		limit = maxShownSelectors
	}
	for i := 0; i < limit; i++ {
		desc := matches[i].Selector.Description
		if desc == "" {
			desc = matches[i].Selector.Selector
		}
		fmt.Fprintf(&b, "%d. %s (selector: %s)\n", i+1, desc, matches[i].Selector.Selector)
	}

	fmt.Fprintf(&b, "\nWhich selector should I use? You can either:\n")
	fmt.Fprintf(&b, "- Specify the number (e.g., \"use selector 1\")\n")
	fmt.Fprintf(&b, "- Provide the exact selector value (e.g., %q)\n", matches[0].Selector.Selector)
	fmt.Fprintf(&b, "- Or provide a more specific description of the element")
	return b.String()
}

// notFoundMessage lists up to five catalog selectors as hints, preferring
// entries that carry descriptions.
func notFoundMessage(description string, pageType domain.PageType, catalog []domain.Selector) string {
	page := strings.ToUpper(string(pageType))

	shown := pickShown(catalog)

	var b strings.Builder
	fmt.Fprintf(&b, "I couldn't find an exact match for %q on the %s page.", description, page)

	if len(shown) > 0 {
		fmt.Fprintf(&b, "\n\nHere are some selectors available on the %s page:\n\n", page)
		for i, entry := range shown {
			desc := entry.Description
			if desc == "" {
				desc = "No description"
			}
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, entry.Selector, desc)
		}
		fmt.Fprintf(&b, "\nWould any of these work for your request?")
		fmt.Fprintf(&b, "\n\nOr you can paste HTML from the page to discover new selectors.")
	}

	fmt.Fprintf(&b, "\n\nAlternatively, if you know the CSS selector, you can provide it directly (e.g., \".product-title\" or \"#product-name\").")
	return b.String()
}

// pickShown fills the hint list with described entries first, scanning a
// window of the catalog, then pads with anything remaining.
func pickShown(catalog []domain.Selector) []domain.Selector {
	var shown []domain.Selector
	picked := make(map[int]struct{})

	window := len(catalog)
	if window > describedScanWindow {
		window = describedScanWindow
	}
	for i := 0; i < window && len(shown) < maxShownSelectors; i++ {
		if catalog[i].Description != "" {
			shown = append(shown, catalog[i])
			picked[i] = struct{}{}
		}
	}
	for i := 0; i < len(catalog) && len(shown) < maxShownSelectors; i++ {
		if _, ok := picked[i]; ok {
			continue
		}
		shown = append(shown, catalog[i])
	}
	return shown
}

// emptyCatalogMessage guides the user to inspect the live element when
// nothing is configured for the page type.
func emptyCatalogMessage(description string, pageType domain.PageType) string {
	page := strings.ToUpper(string(pageType))

	var b strings.Builder
	fmt.Fprintf(&b, "No selectors are configured for the %s page yet.\n\n", page)
	fmt.Fprintf(&b, "To help me generate accurate code, please:\n")
	fmt.Fprintf(&b, "1. Open the %s page in your browser\n", page)
	fmt.Fprintf(&b, "2. Right-click on the %s\n", description)
	fmt.Fprintf(&b, "3. Select \"Inspect\" or \"Inspect Element\"\n")
	fmt.Fprintf(&b, "4. Copy the CSS selector or the relevant HTML\n\n")
	fmt.Fprintf(&b, "Then paste it here, and I'll generate the code with the correct selector.")
	return b.String()
}
