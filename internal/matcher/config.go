// Package matcher ranks selector catalog entries against a natural-language
// element description using multi-factor scoring.
package matcher

// SynonymGroup maps trigger words found in a description to the element-type
// vocabulary used when comparing against stored relationship metadata.
type SynonymGroup struct {
	Triggers []string
	Implies  []string
}

// Config holds every tunable used by the scorer. All weights and thresholds
// live here rather than inline so they can be adjusted in one place.
type Config struct {
	// KeywordWeight scales the keyword-overlap factor.
	KeywordWeight float64
	// JaccardWeight and MatchRatioWeight split the overlap factor between
	// Jaccard similarity and the fraction of description keywords matched.
	JaccardWeight    float64
	MatchRatioWeight float64

	// SubstringCap bounds the score awarded when the description is a
	// substring of an entry description.
	SubstringCap float64

	// ElementTypeBonus is awarded when the stored element type matches the
	// description's implied vocabulary; PartialTypeBonus for near matches.
	ElementTypeBonus float64
	PartialTypeBonus float64

	// Specificity bonuses keyed off the selector string itself.
	TestIDBonus    float64
	ProductIDBonus float64
	IDBonus        float64
	ClassBonus     float64

	// RelationshipBonus is awarded per matched relationship context.
	RelationshipBonus float64

	// Match-type thresholds; entries scoring below KeywordThreshold are
	// discarded.
	ExactThreshold   float64
	PartialThreshold float64
	KeywordThreshold float64

	// MaxMatches caps the returned candidate list.
	MaxMatches int

	// MinKeywordLen drops short tokens during keyword extraction.
	MinKeywordLen int

	StopWords     map[string]struct{}
	SynonymGroups []SynonymGroup

	// Relationship-context trigger phrases.
	SiblingTriggers []string
	ChildTriggers   []string
	ParentTriggers  []string
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		KeywordWeight:    0.4,
		JaccardWeight:    0.6,
		MatchRatioWeight: 0.4,

		SubstringCap: 0.9,

		ElementTypeBonus: 0.3,
		PartialTypeBonus: 0.2,

		TestIDBonus:    0.2,
		ProductIDBonus: 0.15,
		IDBonus:        0.1,
		ClassBonus:     0.05,

		RelationshipBonus: 0.1,

		ExactThreshold:   0.9,
		PartialThreshold: 0.7,
		KeywordThreshold: 0.2,

		MaxMatches:    5,
		MinKeywordLen: 3,

		StopWords: defaultStopWords(),

		SynonymGroups: []SynonymGroup{
			{
				Triggers: []string{"image", "picture", "img", "photo", "graphic", "icon", "badge"},
				Implies:  []string{"image", "content", "picture"},
			},
			{
				Triggers: []string{"button", "btn", "click", "cta", "action", "submit"},
				Implies:  []string{"button", "interactive"},
			},
			{
				Triggers: []string{"link", "anchor", "url", "href"},
				Implies:  []string{"link", "interactive"},
			},
			{
				Triggers: []string{"text", "title", "heading", "h1", "h2", "h3", "label", "name", "description"},
				Implies:  []string{"text", "content"},
			},
			{
				Triggers: []string{"input", "field", "form", "textarea", "select"},
				Implies:  []string{"input", "interactive", "form"},
			},
			{
				Triggers: []string{"container", "card", "div", "section", "wrapper", "box"},
				Implies:  []string{"container"},
			},
		},

		SiblingTriggers: []string{"sibling", "siblings", "next to", "beside"},
		ChildTriggers:   []string{"child", "children", "inside", "within", "contained"},
		ParentTriggers:  []string{"parent", "container", "wrapper"},
	}
}

func defaultStopWords() map[string]struct{} {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "are", "was", "were", "be",
		"been", "have", "has", "had", "do", "does", "did", "will", "would",
		"could", "should", "may", "might", "must", "can", "this", "that",
		"these", "those", "off", "up", "down", "out", "over", "under",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
