package generator

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/testgen/internal/domain"
)

// systemPrompt frames every generation call.
const systemPrompt = "You are a JavaScript code generator for A/B testing. You produce safe, production-ready browser-side scripts and nothing else."

const outputFormat = `CRITICAL OUTPUT FORMAT:
You must return ONLY the raw JavaScript code.
Do NOT wrap it in JSON with fields like "generated_code" or "implementation_notes".
Do NOT include markdown code blocks (` + "```javascript or ```" + `).
Do NOT include any explanatory text, JSON, or metadata.

Your entire response should be executable JavaScript that starts with comments and ends with the closing brace.`

// BuildPrompt assembles the generation prompt: brand context, the approved
// selector catalog, the brand's code rules, template guidance, and the test
// description.
func BuildPrompt(
	brand domain.Brand,
	templates []domain.Template,
	selectors []domain.Selector,
	rules []domain.CodeRule,
	description string,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate safe, production-ready JavaScript code for the %s brand (%s).\n\n",
		brand.Name, brand.Domain)

	b.WriteString(selectorsSection(selectors))
	b.WriteString("\n")
	b.WriteString(rulesSection(rules))
	b.WriteString("\n")
	b.WriteString(templateSection(brand, templates, description))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Test Description:\n%s\n\n", description)

	if brand.GlobalTemplate != "" {
		b.WriteString(`Requirements:
1. Follow the EXACT structure of the global template - do not modify sections, dividers, or utility functions
2. Replace all placeholders ({test_id}, {summary}, {version}, {date}, {features}) with appropriate values
3. Generate safe JavaScript code that does NOT use: eval(), innerHTML, document.write(), or any forbidden patterns
4. Use only the available DOM selectors listed above
5. Place page-specific logic ONLY in the designated "PAGE-SPECIFIC CODE GOES HERE" section
6. Use the log() utility function with LOG_PREFIX for all logging
7. Maintain all error handling, configuration, and structure from the global template

`)
	} else {
		b.WriteString(`Requirements:
1. Generate safe JavaScript code that does NOT use: eval(), innerHTML, document.write(), or any forbidden patterns
2. Use only the available DOM selectors listed above
3. Follow the template structure and patterns shown
4. Ensure the code is production-ready and follows JavaScript best practices
5. Include comments explaining key logic

`)
	}

	b.WriteString(outputFormat)
	return b.String()
}

func selectorsSection(selectors []domain.Selector) string {
	var b strings.Builder
	b.WriteString("Available DOM Selectors:\n")
	if len(selectors) == 0 {
		b.WriteString("- No selectors available for this page type\n")
		return b.String()
	}
	for _, s := range selectors {
		b.WriteString("- " + s.Selector)
		if s.Description != "" {
			fmt.Fprintf(&b, " (%s)", s.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func rulesSection(rules []domain.CodeRule) string {
	var forbidden, required []string
	for _, r := range rules {
		switch r.RuleType {
		case domain.RuleForbiddenPattern:
			forbidden = append(forbidden, r.RuleContent)
		case domain.RuleRequiredPattern:
			required = append(required, r.RuleContent)
		}
	}

	var b strings.Builder
	b.WriteString("Code Rules:\n")
	if len(forbidden) > 0 {
		b.WriteString("FORBIDDEN Patterns (DO NOT USE):\n")
		for _, p := range forbidden {
			b.WriteString("- " + p + "\n")
		}
	}
	if len(required) > 0 {
		b.WriteString("REQUIRED Patterns:\n")
		for _, p := range required {
			b.WriteString("- " + p + "\n")
		}
	}
	if len(forbidden) == 0 && len(required) == 0 {
		b.WriteString("- No specific rules defined\n")
	}
	return b.String()
}

func templateSection(brand domain.Brand, templates []domain.Template, description string) string {
	var b strings.Builder

	if brand.GlobalTemplate != "" {
		b.WriteString("GLOBAL TEMPLATE (Company-wide Structure - MUST FOLLOW EXACTLY):\n")
		b.WriteString("```javascript\n")
		b.WriteString(brand.GlobalTemplate)
		b.WriteString("\n```\n\n")
		b.WriteString("Replace placeholders: {test_id}, {summary}, {version}, {date}, {features}\n")
		b.WriteString("Place your page-specific code ONLY in the 'PAGE-SPECIFIC CODE GOES HERE' section\n\n")

		if len(templates) > 0 {
			fmt.Fprintf(&b, "PAGE TEMPLATE (Reference for page-specific logic patterns):\nTest Type: %s\n",
				templates[0].TestType)
			fmt.Fprintf(&b, "```javascript\n%s\n```\n", templates[0].TemplateCode)
		}
		return b.String()
	}

	b.WriteString("Template Example:\n")
	if len(templates) > 0 {
		fmt.Fprintf(&b, "Test Type: %s\n", templates[0].TestType)
		fmt.Fprintf(&b, "Template Code:\n```javascript\n%s\n```\n", templates[0].TemplateCode)
	} else {
		b.WriteString("No template available - generate safe JavaScript following best practices\n")
	}
	return b.String()
}
