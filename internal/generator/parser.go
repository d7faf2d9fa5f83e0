package generator

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Providers are told to emit raw JavaScript, but some replies come back
// JSON-wrapped or fenced anyway; the parser tolerates both.

var (
	jsonCodeFieldRe = regexp.MustCompile(`(?s)["']generated_code["']\s*:\s*"((?:[^"\\]|\\.)*)"`)
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:javascript|js)?\\s*\n(.*?)```")
)

// codeMarkers distinguish JavaScript from prose in a degenerate reply.
var codeMarkers = []string{"function", "const", "let", "var", "document.", "window.", "(", ")"}

// ParseResponse extracts the JavaScript payload from a provider reply.
// Preference order: JSON wrapper with a generated_code field, then fenced or
// raw code. Returns "" when nothing code-like can be found.
func ParseResponse(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if strings.Contains(text, `"generated_code"`) || strings.Contains(text, `'generated_code'`) {
		if code := parseJSONWrapped(text); code != "" {
			return code
		}
	}

	// A fenced block wins over any surrounding prose.
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	stripped := stripFences(text)
	if stripped != "" && looksLikeCode(stripped) {
		return stripped
	}
	return ""
}

func parseJSONWrapped(text string) string {
	candidate := stripFences(text)

	var wrapper struct {
		GeneratedCode string `json:"generated_code"`
	}
	if err := json.Unmarshal([]byte(candidate), &wrapper); err == nil && wrapper.GeneratedCode != "" {
		return wrapper.GeneratedCode
	}

	// Malformed JSON: pull the field out by pattern and unescape it.
	if m := jsonCodeFieldRe.FindStringSubmatch(text); m != nil {
		var unescaped string
		if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &unescaped); err == nil {
			return unescaped
		}
	}
	return ""
}

// stripFences removes a single leading/trailing markdown code fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range []string{"```javascript", "```js", "```json", "```"} {
		if strings.HasPrefix(text, prefix) {
			text = text[len(prefix):]
			break
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func looksLikeCode(text string) bool {
	for _, marker := range codeMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
