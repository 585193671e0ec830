package prompt

import "strings"

// Template placeholders.
const (
	PlaceholderLang     = "{target_lang}"
	PlaceholderText     = "{text}"
	PlaceholderGlossary = "{glossary}"
)

// Build renders the request text for one task.
//
// Source lines are joined by newline in row order. When the template has
// an explicit {glossary} placeholder the glossary block is substituted
// there; otherwise a non-empty glossary block is prepended immediately
// before the source text so it is never silently dropped. Line-count
// validation is the caller's concern, not the builder's.
func Build(template, lang string, sourceLines []string, glossaryText string) string {
	text := strings.Join(sourceLines, "\n")

	out := strings.ReplaceAll(template, PlaceholderLang, lang)

	if strings.Contains(out, PlaceholderGlossary) {
		out = strings.ReplaceAll(out, PlaceholderGlossary, glossaryText)
	} else if glossaryText != "" {
		text = glossaryText + "\n\n" + text
	}

	return strings.ReplaceAll(out, PlaceholderText, text)
}
