// Package glossary implements the static per-language terminology store.
//
// The glossary file is a two-level YAML map: language code → term →
// translation. Term order follows the document, so glossary text injected
// into prompts is stable across runs:
//
//	en:
//	  барон: baron
//	  крепость: stronghold
//	jp:
//	  крепость: 拠点
//
// The store is loaded once per run and is read-only. A missing file is not
// an error — the feature degrades silently.
package glossary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Term is one term → translation pair, in document order.
type Term struct {
	Term        string
	Translation string
}

// Glossary holds per-language term lists.
type Glossary struct {
	byLang map[string][]Term
}

// Empty returns a glossary with no entries.
func Empty() *Glossary {
	return &Glossary{byLang: map[string][]Term{}}
}

// Load reads a glossary file. An empty path or a missing file yields an
// empty glossary and no error.
func Load(path string) (*Glossary, error) {
	if path == "" {
		return Empty(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}

// Parse parses glossary YAML. Decoding goes through yaml.Node so that
// term order is preserved (a plain map would randomize it).
func Parse(data []byte) (*Glossary, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	g := Empty()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return g, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("glossary root must be a mapping of language codes")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		langNode := root.Content[i]
		termsNode := root.Content[i+1]
		lang := strings.TrimSpace(langNode.Value)
		if lang == "" || termsNode.Kind != yaml.MappingNode {
			continue
		}
		var terms []Term
		for j := 0; j+1 < len(termsNode.Content); j += 2 {
			k := termsNode.Content[j]
			v := termsNode.Content[j+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				continue
			}
			terms = append(terms, Term{Term: k.Value, Translation: v.Value})
		}
		g.byLang[lang] = terms
	}
	return g, nil
}

// Terms returns the term list for a language, in document order.
// Returns nil when the language has no glossary.
func (g *Glossary) Terms(lang string) []Term {
	return g.byLang[lang]
}

// Text renders the glossary block injected into prompts for one language:
// one "<term> -> <translation>" line per term, followed by an instruction
// to use the given translations verbatim. Returns "" when the language
// has no glossary.
func (g *Glossary) Text(lang string) string {
	terms := g.byLang[lang]
	if len(terms) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Glossary (use these exact translations for the listed terms):\n")
	for _, t := range terms {
		sb.WriteString(t.Term)
		sb.WriteString(" -> ")
		sb.WriteString(t.Translation)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Languages returns the language codes that have at least one term.
func (g *Glossary) Languages() []string {
	var langs []string
	for lang, terms := range g.byLang {
		if len(terms) > 0 {
			langs = append(langs, lang)
		}
	}
	return langs
}
