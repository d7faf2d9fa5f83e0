package selector

import (
	"regexp"
	"strings"
)

// Natural-language reference patterns.
var (
	quotedDirectRe = regexp.MustCompile(`["']([.#][\w-]+)["']`)
	labeledRe      = regexp.MustCompile(`(?i)(?:selector|css)[:\s]+["']?([.#][\w-]+)["']?`)
	standaloneRe   = regexp.MustCompile(`\B([.#][\w-]+)\b`)

	// "id is 'product-name'", "id='product-name'", "the id product-name"
	idRefRes = []*regexp.Regexp{
		regexp.MustCompile(`\bid\s*(?:is|=|:)\s*["']?([a-zA-Z0-9_-]+)["']?`),
		regexp.MustCompile(`\bthe\s+id\s+["']?([a-zA-Z0-9_-]+)["']?`),
		regexp.MustCompile(`\bid\s+["']?([a-zA-Z0-9_-]+)["']?`),
	}
	// "class is 'product-title'", "the class product-title"
	classRefRes = []*regexp.Regexp{
		regexp.MustCompile(`\bclass\s*(?:is|=|:)\s*["']?([a-zA-Z0-9_-]+)["']?`),
		regexp.MustCompile(`\bthe\s+class\s+["']?([a-zA-Z0-9_-]+)["']?`),
		regexp.MustCompile(`\bclass\s+["']?([a-zA-Z0-9_-]+)["']?`),
	}
	// "it's product-name" / "it is product-name"
	itsRe = regexp.MustCompile(`(?:it'?s|it\s+is)\s+["']?([a-zA-Z0-9_-]+)["']?`)

	bareNameRe   = regexp.MustCompile(`\b([a-zA-Z][a-zA-Z0-9_-]{2,})\b`)
	identifierRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	attrOnlyRe   = regexp.MustCompile(`\[[\w-]+(?:=["'][^"']+["'])?\]`)
)

// bareNameStopWords are generic tokens never treated as bare selector names.
var bareNameStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"product": {}, "page": {}, "element": {}, "button": {}, "text": {},
	"name": {}, "title": {}, "price": {}, "cart": {}, "checkout": {},
	"home": {}, "change": {}, "modify": {}, "update": {}, "use": {},
	"selector": {}, "class": {}, "what": {}, "please": {},
}

// ExtractNatural looks for natural-language id/class references in a user
// message ("the id is product-name", "it's add-to-cart", a bare hyphenated
// token). Context is the recent conversation, used to disambiguate whether an
// unprefixed token means an id or a class. The returned string is prefixed
// with "#" or "." when the kind is known, and returned bare when it is not —
// callers should then try both prefixes. ok is false when nothing selector-like
// was found.
func ExtractNatural(message string, context []string) (sel string, ok bool) {
	if strings.TrimSpace(message) == "" {
		return "", false
	}

	lower := strings.ToLower(message)
	hasIDContext, hasClassContext := contextKind(context)

	// Already-prefixed references win outright.
	for _, re := range []*regexp.Regexp{quotedDirectRe, labeledRe, standaloneRe} {
		if m := re.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}

	// A full attribute selector before the phrasing patterns, which would
	// otherwise chew on the id= inside it.
	if m := attrOnlyRe.FindString(message); m != "" {
		return m, true
	}

	for _, re := range idRefRes {
		if m := re.FindStringSubmatch(lower); m != nil && identifierRe.MatchString(m[1]) {
			return "#" + m[1], true
		}
	}

	for _, re := range classRefRes {
		if m := re.FindStringSubmatch(lower); m != nil && identifierRe.MatchString(m[1]) {
			return "." + m[1], true
		}
	}

	// "it's X" only means something after id/class talk.
	if hasIDContext || strings.Contains(lower, "id") {
		if m := itsRe.FindStringSubmatch(lower); m != nil && identifierRe.MatchString(m[1]) {
			return "#" + m[1], true
		}
	}
	if hasClassContext || (strings.Contains(lower, "class") && !strings.Contains(lower, "id")) {
		if m := itsRe.FindStringSubmatch(lower); m != nil && identifierRe.MatchString(m[1]) {
			return "." + m[1], true
		}
	}

	if name, found := firstBareName(message); found {
		switch {
		case hasIDContext:
			return "#" + name, true
		case hasClassContext:
			return "." + name, true
		default:
			// Unprefixed: the resolver tries both #name and .name.
			return name, true
		}
	}

	return "", false
}

// contextKind scans recent messages for id/class vocabulary.
func contextKind(context []string) (hasID, hasClass bool) {
	if len(context) == 0 {
		return false, false
	}
	joined := strings.ToLower(strings.Join(context, " "))

	for _, kw := range []string{"the id", "element id", "id is", "identifier", "h1 id", "div id"} {
		if strings.Contains(joined, kw) {
			hasID = true
			break
		}
	}
	for _, kw := range []string{"class", "css class", "element class", "class name"} {
		if strings.Contains(joined, kw) {
			hasClass = true
			break
		}
	}
	return hasID, hasClass
}

// firstBareName returns the first token that looks like a selector name
// rather than prose: hyphen/underscore separated, or a non-generic word.
func firstBareName(message string) (string, bool) {
	for _, m := range bareNameRe.FindAllString(message, -1) {
		if _, stop := bareNameStopWords[strings.ToLower(m)]; stop {
			continue
		}
		if strings.ContainsAny(m, "-_") {
			return m, true
		}
	}
	return "", false
}
