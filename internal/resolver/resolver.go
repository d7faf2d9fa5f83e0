// Package resolver turns natural-language element references plus
// conversation history into catalog-backed CSS selectors.
package resolver

import (
	"strings"

	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/logger"
	"github.com/jonesrussell/testgen/internal/matcher"
	"github.com/jonesrussell/testgen/internal/selector"
)

// contextWindow bounds how far back the resolver scans for a prior
// disambiguation prompt.
const contextWindow = 5

// Resolver runs the resolution cascade: explicit selector extraction, then
// choice disambiguation, then fuzzy catalog matching. It holds no mutable
// state; every call is independent.
type Resolver struct {
	matcher *matcher.Matcher
	log     logger.Logger
}

// New builds a Resolver around the given matcher.
func New(m *matcher.Matcher, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{matcher: m, log: log}
}

// Resolve maps the request to a resolution outcome against the catalog
// snapshot. The catalog must already be scoped to the request's brand, page
// type, and active status. Resolve is total: malformed input yields a
// structured negative result, never an error.
func (r *Resolver) Resolve(req domain.ResolutionRequest, catalog []domain.Selector) domain.ResolutionResult {
	// A request with no element reference needs no selector.
	if strings.TrimSpace(req.ElementDescription) == "" {
		return domain.ResolutionResult{
			Status:  domain.StatusNotFound,
			IsValid: true,
			Source:  domain.SourceNone,
		}
	}

	// Explicit selectors in the current message outrank everything else,
	// including numbered choices.
	if res, ok := r.resolveExplicit(req, catalog); ok {
		return res
	}

	if res, ok := r.resolveChoiceFromHistory(req, catalog); ok {
		return res
	}

	return r.resolveFuzzy(req, catalog)
}

// resolveExplicit handles selectors typed directly into the message, plus
// natural-language phrasings like "the id is product-name".
func (r *Resolver) resolveExplicit(req domain.ResolutionRequest, catalog []domain.Selector) (domain.ResolutionResult, bool) {
	if req.UserMessage == "" {
		return domain.ResolutionResult{}, false
	}

	for _, sel := range selector.ExtractExplicit(req.UserMessage) {
		if !selector.IsValidSyntax(sel) {
			continue
		}
		if entry := findExact(catalog, sel); entry != nil {
			r.log.Debug("explicit selector found in catalog", logger.String("selector", sel))
			return foundInCatalog(sel, entry), true
		}
		r.log.Info("valid selector not in catalog, flagging for review",
			logger.String("selector", sel))
		return userProvided(sel), true
	}

	return r.resolveNatural(req, catalog)
}

// resolveNatural handles id/class phrasings. A prefixed result behaves like
// an explicitly typed selector. A bare token is tried as both an id and a
// class, id first, and only resolves on a catalog hit; otherwise the fuzzy
// stage takes over.
func (r *Resolver) resolveNatural(req domain.ResolutionRequest, catalog []domain.Selector) (domain.ResolutionResult, bool) {
	name, ok := selector.ExtractNatural(req.UserMessage, contextStrings(req))
	if !ok {
		return domain.ResolutionResult{}, false
	}

	if strings.HasPrefix(name, "#") || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "[") {
		if !selector.IsValidSyntax(name) {
			return domain.ResolutionResult{}, false
		}
		if entry := findExact(catalog, name); entry != nil {
			return foundInCatalog(name, entry), true
		}
		r.log.Info("phrased selector not in catalog, flagging for review",
			logger.String("selector", name))
		return userProvided(name), true
	}

	for _, candidate := range []string{"#" + name, "." + name} {
		if entry := findExact(catalog, candidate); entry != nil {
			r.log.Debug("bare token matched catalog", logger.String("selector", candidate))
			return foundInCatalog(candidate, entry), true
		}
	}
	return domain.ResolutionResult{}, false
}

// resolveChoiceFromHistory handles a numbered reply to an earlier
// disambiguation prompt. Structured turns carrying offered options are
// preferred; scanning prior message text for the prompt phrasing is the
// fallback for callers that only have raw strings.
func (r *Resolver) resolveChoiceFromHistory(req domain.ResolutionRequest, catalog []domain.Selector) (domain.ResolutionResult, bool) {
	if req.UserMessage == "" {
		return domain.ResolutionResult{}, false
	}
	choice, ok := selector.ExtractChoice(req.UserMessage)
	if !ok {
		return domain.ResolutionResult{}, false
	}

	if options := lastOfferedOptions(req.Turns); len(options) > 0 {
		if choice >= 1 && choice <= len(options) {
			sel := options[choice-1]
			if selector.IsValidSyntax(sel) {
				if entry := findExact(catalog, sel); entry != nil {
					r.log.Debug("choice resolved from structured options",
						logger.Int("choice", choice), logger.String("selector", sel))
					return foundInCatalog(sel, entry), true
				}
			}
		}
		// Out-of-range or stale option: fall through to fuzzy matching,
		// which re-derives candidates and validates the choice against them.
		return domain.ResolutionResult{}, false
	}

	if prompt := lastDisambiguationPrompt(contextStrings(req)); prompt != "" {
		sel := selector.SelectorForChoice(prompt, choice)
		if sel != "" && selector.IsValidSyntax(sel) {
			if entry := findExact(catalog, sel); entry != nil {
				r.log.Debug("choice resolved from prompt text",
					logger.Int("choice", choice), logger.String("selector", sel))
				return foundInCatalog(sel, entry), true
			}
		}
	}

	return domain.ResolutionResult{}, false
}

// resolveFuzzy ranks the catalog against the description and interprets a
// numbered choice against the ranked candidates.
func (r *Resolver) resolveFuzzy(req domain.ResolutionRequest, catalog []domain.Selector) domain.ResolutionResult {
	desc := strings.ToLower(strings.TrimSpace(req.ElementDescription))

	if len(catalog) == 0 {
		return domain.ResolutionResult{
			Status:  domain.StatusNotFound,
			Source:  domain.SourceNone,
			Message: emptyCatalogMessage(req.ElementDescription, req.PageType),
		}
	}

	matches := r.matcher.Match(desc, catalog)

	if choice, ok := selector.ExtractChoice(req.UserMessage); ok && len(matches) > 1 {
		if choice >= 1 && choice <= len(matches) {
			picked := matches[choice-1]
			r.log.Info("choice resolved from fuzzy candidates",
				logger.Int("choice", choice),
				logger.String("selector", picked.Selector.Selector))
			return domain.ResolutionResult{
				Status:           domain.StatusFoundInDB,
				IsValid:          true,
				ResolvedSelector: picked.Selector.Selector,
				Source:           domain.SourceDatabase,
				Matches:          []domain.SelectorMatch{picked},
			}
		}
		return domain.ResolutionResult{
			Status:  domain.StatusInvalidChoice,
			Source:  domain.SourceNone,
			Matches: matches,
			Message: invalidChoiceMessage(len(matches)),
		}
	}

	switch len(matches) {
	case 0:
		return domain.ResolutionResult{
			Status:  domain.StatusNotFound,
			Source:  domain.SourceNone,
			Message: notFoundMessage(req.ElementDescription, req.PageType, catalog),
		}
	case 1:
		return domain.ResolutionResult{
			Status:           domain.StatusFoundInDB,
			IsValid:          true,
			ResolvedSelector: matches[0].Selector.Selector,
			Source:           domain.SourceDatabase,
			Matches:          matches,
		}
	default:
		return domain.ResolutionResult{
			Status:  domain.StatusMultipleMatch,
			Source:  domain.SourceNone,
			Matches: matches,
			Message: multipleMatchesMessage(req.ElementDescription, matches),
		}
	}
}

// Options returns the selector strings of a multiple-match result, in rank
// order, for callers recording structured offered options on the next
// assistant turn.
func Options(res domain.ResolutionResult) []string {
	if len(res.Matches) == 0 {
		return nil
	}
	options := make([]string, 0, len(res.Matches))
	for _, m := range res.Matches {
		options = append(options, m.Selector.Selector)
	}
	return options
}

func userProvided(sel string) domain.ResolutionResult {
	return domain.ResolutionResult{
		Status:           domain.StatusValidNotInDB,
		IsValid:          true,
		ResolvedSelector: sel,
		Source:           domain.SourceUserProvided,
		RequiresReview:   true,
		Message:          userProvidedMessage(sel),
	}
}

func foundInCatalog(sel string, entry *domain.Selector) domain.ResolutionResult {
	return domain.ResolutionResult{
		Status:           domain.StatusFoundInDB,
		IsValid:          true,
		ResolvedSelector: sel,
		Source:           domain.SourceDatabase,
		Matches: []domain.SelectorMatch{
			{Selector: entry, Confidence: 1.0, MatchType: domain.MatchExact},
		},
	}
}

func findExact(catalog []domain.Selector, sel string) *domain.Selector {
	for i := range catalog {
		if catalog[i].Selector == sel {
			return &catalog[i]
		}
	}
	return nil
}

// lastOfferedOptions returns the options of the most recent assistant turn
// that offered any, looking back at most contextWindow turns.
func lastOfferedOptions(turns []domain.ConversationTurn) []string {
	start := len(turns) - contextWindow
	if start < 0 {
		start = 0
	}
	for i := len(turns) - 1; i >= start; i-- {
		if turns[i].Role == domain.RoleAssistant && len(turns[i].OfferedOptions) > 0 {
			return turns[i].OfferedOptions
		}
	}
	return nil
}

// lastDisambiguationPrompt scans recent history for the phrasing of a
// multiple-matches prompt.
func lastDisambiguationPrompt(context []string) string {
	start := len(context) - contextWindow
	if start < 0 {
		start = 0
	}
	for i := len(context) - 1; i >= start; i-- {
		lower := strings.ToLower(context[i])
		if strings.Contains(lower, "found multiple selectors") ||
			strings.Contains(lower, "which selector should i use") {
			return context[i]
		}
	}
	return ""
}

// contextStrings flattens the history for text scanning, preferring the flat
// context when supplied.
func contextStrings(req domain.ResolutionRequest) []string {
	if len(req.Context) > 0 {
		return req.Context
	}
	if len(req.Turns) == 0 {
		return nil
	}
	out := make([]string, 0, len(req.Turns))
	for _, t := range req.Turns {
		out = append(out, t.Content)
	}
	return out
}
