package selector

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	useSelectorChoiceRe = regexp.MustCompile(`use\s+(?:selector|option)\s+(\d+)`)
	selectorChoiceRe    = regexp.MustCompile(`(?:selector|option)\s+(\d+)`)
	numberUseChoiceRe   = regexp.MustCompile(`(?:number|use)\s+(\d+)`)
	bareNumberRe        = regexp.MustCompile(`^\d{1,2}$`)

	// "N. description (selector: .foo)"
	choiceLineParenRe = regexp.MustCompile(`(?i)^(\d+)\.\s+.*?\(selector:\s*([^)]+)\)`)
	// "N. .foo" — short line that is likely just a selector
	choiceLineBareRe = regexp.MustCompile(`(?i)^(\d+)\.\s+([^\s)]+)(?:\s|$)`)
)

// maxBareChoiceLineLen bounds the fallback "N. selector" form so prose lines
// are not mistaken for selector options.
const maxBareChoiceLineLen = 100

// ExtractChoice returns the 1-indexed option number a user picked in a
// message ("use selector 3", "option 2", "number 1", or a bare 1–2 digit
// reply). ok is false when the message contains no numbered choice.
func ExtractChoice(message string) (n int, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return 0, false
	}

	for _, re := range []*regexp.Regexp{useSelectorChoiceRe, selectorChoiceRe, numberUseChoiceRe} {
		if m := re.FindStringSubmatch(lower); m != nil {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return v, true
		}
	}

	if bareNumberRe.MatchString(lower) {
		v, err := strconv.Atoi(lower)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	return 0, false
}

// SelectorForChoice extracts the selector for option number choice from a
// prior disambiguation message containing numbered lines. Lines of the form
// "N. description (selector: X)" are preferred; a short "N. X" line is the
// fallback. Returns "" when the option is not present.
func SelectorForChoice(message string, choice int) string {
	if message == "" || choice < 1 {
		return ""
	}

	want := strconv.Itoa(choice)
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)

		if m := choiceLineParenRe.FindStringSubmatch(line); m != nil && m[1] == want {
			if sel := strings.TrimSpace(m[2]); sel != "" {
				return sel
			}
		}

		if len(line) < maxBareChoiceLineLen {
			if m := choiceLineBareRe.FindStringSubmatch(line); m != nil && m[1] == want {
				sel := strings.TrimSpace(m[2])
				if sel != "" && !strings.HasPrefix(sel, "(") {
					return sel
				}
			}
		}
	}

	return ""
}
