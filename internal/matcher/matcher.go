package matcher

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/logger"
)

var wordRe = regexp.MustCompile(`\w+`)

// Matcher scores catalog entries against element descriptions.
type Matcher struct {
	cfg Config
	log logger.Logger
}

// New builds a Matcher with the given configuration.
func New(cfg Config, log logger.Logger) *Matcher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Matcher{cfg: cfg, log: log}
}

// relationshipContext captures which structural relationships the description
// alluded to.
type relationshipContext struct {
	sibling bool
	child   bool
	parent  bool
}

// Match ranks entries by relevance to the description. Entries without a
// description never match; entries scoring below the keyword threshold are
// dropped. Results are sorted by descending confidence, capped at
// cfg.MaxMatches.
func (m *Matcher) Match(description string, entries []domain.Selector) []domain.SelectorMatch {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" || len(entries) == 0 {
		return nil
	}

	keywords := m.Keywords(desc)
	typeKeywords := m.typeKeywords(desc)
	relCtx := m.relationships(desc)

	m.log.Debug("fuzzy matching",
		logger.String("description", desc),
		logger.Strings("keywords", keywords),
		logger.Int("catalog_size", len(entries)))

	var matches []domain.SelectorMatch
	for i := range entries {
		entry := &entries[i]
		entryDesc := strings.ToLower(strings.TrimSpace(entry.Description))
		if entryDesc == "" {
			continue
		}

		score := m.score(desc, keywords, typeKeywords, relCtx, entry, entryDesc)

		var matchType domain.MatchType
		switch {
		case score >= m.cfg.ExactThreshold:
			matchType = domain.MatchExact
		case score >= m.cfg.PartialThreshold:
			matchType = domain.MatchPartial
		case score >= m.cfg.KeywordThreshold:
			matchType = domain.MatchKeyword
		default:
			continue
		}

		matches = append(matches, domain.SelectorMatch{
			Selector:   entry,
			Confidence: score,
			MatchType:  matchType,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	if len(matches) > m.cfg.MaxMatches {
		matches = matches[:m.cfg.MaxMatches]
	}
	return matches
}

// score computes the multi-factor relevance of one entry: keyword overlap,
// stored element type, selector specificity, and relationship context. A
// verbatim description match short-circuits to 1.0.
func (m *Matcher) score(
	desc string,
	keywords, typeKeywords []string,
	relCtx relationshipContext,
	entry *domain.Selector,
	entryDesc string,
) float64 {
	score := m.overlap(keywords, m.Keywords(entryDesc)) * m.cfg.KeywordWeight

	if entryDesc == desc {
		return 1.0
	}

	// A contained description scores proportionally to how much of the entry
	// description it covers.
	if strings.Contains(entryDesc, desc) {
		contained := float64(len(desc)) / float64(len(entryDesc))
		if contained > m.cfg.SubstringCap {
			contained = m.cfg.SubstringCap
		}
		if contained > score {
			score = contained
		}
	}

	score += m.typeBonus(entry, typeKeywords)
	score += m.specificityBonus(entry.Selector)
	score += m.relationshipBonus(entry, relCtx)

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (m *Matcher) typeBonus(entry *domain.Selector, typeKeywords []string) float64 {
	if entry.Relationships == nil || entry.Relationships.ElementType == "" || len(typeKeywords) == 0 {
		return 0
	}
	elementType := strings.ToLower(string(entry.Relationships.ElementType))

	for _, kw := range typeKeywords {
		if strings.Contains(elementType, kw) {
			return m.cfg.ElementTypeBonus
		}
	}

	// Near matches: stored "content" for image-ish requests, stored
	// "interactive" for button/link-ish requests.
	if strings.Contains(elementType, "content") &&
		(contains(typeKeywords, "image") || contains(typeKeywords, "picture")) {
		return m.cfg.PartialTypeBonus
	}
	if strings.Contains(elementType, "interactive") &&
		(contains(typeKeywords, "button") || contains(typeKeywords, "link")) {
		return m.cfg.PartialTypeBonus
	}
	return 0
}

func (m *Matcher) specificityBonus(selector string) float64 {
	s := strings.ToLower(selector)
	switch {
	case strings.Contains(s, "data-test-id") || strings.Contains(s, "data-testid"):
		return m.cfg.TestIDBonus
	case strings.Contains(s, "data-product-id") || strings.Contains(s, "data-tracking-id"):
		return m.cfg.ProductIDBonus
	case strings.HasPrefix(s, "#"):
		return m.cfg.IDBonus
	case strings.HasPrefix(s, "."):
		return m.cfg.ClassBonus
	default:
		return 0
	}
}

func (m *Matcher) relationshipBonus(entry *domain.Selector, relCtx relationshipContext) float64 {
	if entry.Relationships == nil {
		return 0
	}
	var bonus float64
	if relCtx.sibling && len(entry.Relationships.Siblings) > 0 {
		bonus += m.cfg.RelationshipBonus
	}
	if relCtx.child && len(entry.Relationships.Children) > 0 {
		bonus += m.cfg.RelationshipBonus
	}
	if relCtx.parent && entry.Relationships.Parent != "" {
		bonus += m.cfg.RelationshipBonus
	}
	return bonus
}

// Keywords tokenizes text into lowercase keywords, dropping stop words and
// tokens shorter than the configured minimum.
func (m *Matcher) Keywords(text string) []string {
	var keywords []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) < m.cfg.MinKeywordLen {
			continue
		}
		if _, stop := m.cfg.StopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// overlap blends Jaccard similarity with the fraction of description keywords
// that matched.
func (m *Matcher) overlap(descKeywords, entryKeywords []string) float64 {
	if len(descKeywords) == 0 || len(entryKeywords) == 0 {
		return 0
	}

	descSet := toSet(descKeywords)
	entrySet := toSet(entryKeywords)

	var intersection int
	for w := range descSet {
		if _, ok := entrySet[w]; ok {
			intersection++
		}
	}
	union := len(descSet) + len(entrySet) - intersection
	if union == 0 {
		return 0
	}

	jaccard := float64(intersection) / float64(union)
	matchRatio := float64(intersection) / float64(len(descSet))

	return jaccard*m.cfg.JaccardWeight + matchRatio*m.cfg.MatchRatioWeight
}

// typeKeywords expands the description into element-type vocabulary via the
// synonym groups.
func (m *Matcher) typeKeywords(desc string) []string {
	var implied []string
	seen := make(map[string]struct{})
	for _, group := range m.cfg.SynonymGroups {
		for _, trigger := range group.Triggers {
			if !strings.Contains(desc, trigger) {
				continue
			}
			for _, kw := range group.Implies {
				if _, ok := seen[kw]; !ok {
					seen[kw] = struct{}{}
					implied = append(implied, kw)
				}
			}
			break
		}
	}
	return implied
}

func (m *Matcher) relationships(desc string) relationshipContext {
	return relationshipContext{
		sibling: containsAny(desc, m.cfg.SiblingTriggers),
		child:   containsAny(desc, m.cfg.ChildTriggers),
		parent:  containsAny(desc, m.cfg.ParentTriggers),
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
