// Package domanalysis extracts selector candidates from pasted HTML so users
// can grow the catalog from a live page fragment instead of hand-writing
// selectors.
package domanalysis

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/logger"
)

// maxCandidates bounds one analysis pass; pasted fragments can be huge.
const maxCandidates = 50

// maxDescriptionLen bounds the derived description text.
const maxDescriptionLen = 80

// Candidate is one selector proposal derived from the HTML.
type Candidate struct {
	Selector      string                        `json:"selector"`
	Description   string                        `json:"description,omitempty"`
	ElementType   domain.ElementType            `json:"element_type"`
	Relationships *domain.SelectorRelationships `json:"relationships,omitempty"`
}

// Analyzer parses HTML fragments into catalog candidates.
type Analyzer struct {
	log logger.Logger
}

// New builds an Analyzer.
func New(log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Analyzer{log: log}
}

// Analyze extracts candidates in specificity order: data-test-id attributes
// first, then ids, then single classes. Candidates are deduplicated by
// selector string and capped.
func (a *Analyzer) Analyze(html string) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[string]struct{})
	var candidates []Candidate
	add := func(c Candidate) {
		if len(candidates) >= maxCandidates {
			return
		}
		if _, ok := seen[c.Selector]; ok {
			return
		}
		seen[c.Selector] = struct{}{}
		candidates = append(candidates, c)
	}

	doc.Find("[data-test-id]").Each(func(_ int, s *goquery.Selection) {
		value, _ := s.Attr("data-test-id")
		if value == "" {
			return
		}
		tag := goquery.NodeName(s)
		add(Candidate{
			Selector:      fmt.Sprintf("%s[data-test-id='%s']", tag, value),
			Description:   describe(s),
			ElementType:   classify(tag),
			Relationships: relationships(s),
		})
	})

	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" || strings.ContainsAny(id, " \t") {
			return
		}
		add(Candidate{
			Selector:      "#" + id,
			Description:   describe(s),
			ElementType:   classify(goquery.NodeName(s)),
			Relationships: relationships(s),
		})
	})

	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class := firstClass(s)
		if class == "" {
			return
		}
		add(Candidate{
			Selector:    "." + class,
			Description: describe(s),
			ElementType: classify(goquery.NodeName(s)),
		})
	})

	a.log.Debug("html analyzed", logger.Int("candidates", len(candidates)))
	return candidates, nil
}

// describe derives a short human description: aria-label, alt text, then the
// element's own text.
func describe(s *goquery.Selection) string {
	for _, attr := range []string{"aria-label", "alt", "title", "placeholder"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return truncate(strings.TrimSpace(v))
		}
	}
	text := strings.Join(strings.Fields(s.Text()), " ")
	return truncate(text)
}

// classify guesses the stored element type from the tag name.
func classify(tag string) domain.ElementType {
	switch tag {
	case "button", "a", "input", "select", "textarea", "form", "option":
		return domain.ElementInteractive
	case "img", "picture", "svg", "video", "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "span", "label", "strong", "em", "figcaption":
		return domain.ElementContent
	case "table", "tr", "td", "th", "dl", "dt", "dd", "time", "data", "output":
		return domain.ElementData
	default:
		return domain.ElementContainer
	}
}

// relationships records the nearest identified ancestor and identified
// direct children, when any exist.
func relationships(s *goquery.Selection) *domain.SelectorRelationships {
	rel := &domain.SelectorRelationships{}

	parent := s.Parents().FilterFunction(func(_ int, p *goquery.Selection) bool {
		return identifier(p) != ""
	}).First()
	if parent.Length() > 0 {
		rel.Parent = identifier(parent)
	}

	s.Children().Each(func(_ int, c *goquery.Selection) {
		if id := identifier(c); id != "" {
			rel.Children = append(rel.Children, id)
		}
	})

	if rel.Parent == "" && len(rel.Children) == 0 {
		return nil
	}
	return rel
}

// identifier returns the most specific selector for an element, or "".
func identifier(s *goquery.Selection) string {
	if v, ok := s.Attr("data-test-id"); ok && v != "" {
		return fmt.Sprintf("%s[data-test-id='%s']", goquery.NodeName(s), v)
	}
	if id, ok := s.Attr("id"); ok && id != "" && !strings.ContainsAny(id, " \t") {
		return "#" + id
	}
	if class := firstClass(s); class != "" {
		return "." + class
	}
	return ""
}

func firstClass(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func truncate(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	return s[:maxDescriptionLen]
}
