package validation

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/testgen/internal/domain"
)

// Confidence weights and caps.
const (
	templateCap = 0.3
	ruleCap     = 0.4
	selectorCap = 0.3

	noTemplateScore    = 0.1
	structuralScore    = 0.2
	violationPenalty   = 0.1
	invalidSelPenalty  = 0.05
	safeThreshold      = 0.8
	carefullyThreshold = 0.6
)

var functionNameRe = regexp.MustCompile(`\bfunction\s+(\w+)`)

// ScoreConfidence combines template adherence, rule compliance, and selector
// validity into a bounded confidence breakdown for generated code. Templates
// beyond the first are ignored.
func ScoreConfidence(code string, templates []domain.Template, result domain.ValidationResult) domain.ConfidenceBreakdown {
	templateScore := scoreTemplate(code, templates)
	ruleScore := scoreRules(result)
	selectorScore := scoreSelectors(result)

	overall := templateScore + ruleScore + selectorScore
	if overall > 1.0 {
		overall = 1.0
	}
	if overall < 0.0 {
		overall = 0.0
	}

	return domain.ConfidenceBreakdown{
		OverallScore:     overall,
		TemplateScore:    templateScore,
		RuleScore:        ruleScore,
		SelectorScore:    selectorScore,
		RuleViolations:   result.RuleViolations,
		InvalidSelectors: result.InvalidSelectors,
		IsValid:          result.IsValid,
		ValidationStatus: status(result),
		Recommendation:   recommendation(overall, result),
	}
}

// scoreTemplate measures adherence to the reference template: overlap of
// declared function names when either side has them, a structural
// querySelector check otherwise, and a word-overlap fallback. No template at
// all earns a low fixed score.
func scoreTemplate(code string, templates []domain.Template) float64 {
	if len(templates) == 0 {
		return noTemplateScore
	}

	templateCode := strings.ToLower(templates[0].TemplateCode)
	lowerCode := strings.ToLower(code)

	templateFuncs := functionNames(templateCode)
	if len(templateFuncs) > 0 {
		codeFuncs := functionNames(lowerCode)
		var overlap int
		for name := range templateFuncs {
			if _, ok := codeFuncs[name]; ok {
				overlap++
			}
		}
		return float64(overlap) / float64(len(templateFuncs)) * templateCap
	}

	if strings.Contains(templateCode, "queryselector") && strings.Contains(lowerCode, "queryselector") {
		return structuralScore
	}

	if templateCode != "" && lowerCode != "" {
		templateWords := toWordSet(templateCode)
		codeWords := toWordSet(lowerCode)
		var common int
		for w := range templateWords {
			if _, ok := codeWords[w]; ok {
				common++
			}
		}
		if len(templateWords) > 0 {
			return float64(common) / float64(len(templateWords)) * templateCap
		}
	}
	return 0
}

func scoreRules(result domain.ValidationResult) float64 {
	if len(result.RuleViolations) == 0 {
		return ruleCap
	}
	score := ruleCap - float64(len(result.RuleViolations))*violationPenalty
	if score < 0 {
		score = 0
	}
	return score
}

func scoreSelectors(result domain.ValidationResult) float64 {
	if len(result.InvalidSelectors) == 0 {
		return selectorCap
	}
	score := selectorCap - float64(len(result.InvalidSelectors))*invalidSelPenalty
	if score < 0 {
		score = 0
	}
	return score
}

// status classifies the run. Warning covers the case where the rule checks
// are clean but selector usages could not be confirmed against the catalog.
func status(result domain.ValidationResult) domain.ValidationStatus {
	switch {
	case result.IsValid && len(result.RuleViolations) == 0:
		return domain.ValidationPassed
	case len(result.RuleViolations) > 0:
		return domain.ValidationFailed
	default:
		return domain.ValidationWarning
	}
}

func recommendation(overall float64, result domain.ValidationResult) domain.Recommendation {
	clean := len(result.RuleViolations) == 0 && len(result.InvalidSelectors) == 0
	switch {
	case overall >= safeThreshold && result.IsValid && clean:
		return domain.RecommendSafeToUse
	case overall >= carefullyThreshold:
		return domain.RecommendReviewCarefully
	default:
		return domain.RecommendNeedsFixes
	}
}

func functionNames(code string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, m := range functionNameRe.FindAllStringSubmatch(code, -1) {
		names[m[1]] = struct{}{}
	}
	return names
}

func toWordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
