package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Response parsing
// ---------------------------------------------------------------------------

var markdownCodeBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ParseResponse turns a backend response into translated lines.
//
// Preferred shape: a JSON array somewhere in the text (first '[' to last
// ']', markdown code fences tolerated); its elements, stringified, are the
// lines in order. When no bracket pair exists, or the bracketed content is
// not a valid JSON array, the raw text is split on the literal two-character
// "\n" escape sequence instead — backends are known to emit escaped rather
// than literal newlines in plain responses.
//
// A failed JSON parse is returned as a non-nil warning alongside the
// fallback lines; it is never a task failure. Line counts are not checked
// here — alignment shortfalls are the writeback step's concern.
func ParseResponse(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)

	content := trimmed
	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return splitEscapedLines(trimmed), nil
	}

	var elems []any
	if err := json.Unmarshal([]byte(content[start:end+1]), &elems); err != nil {
		return splitEscapedLines(trimmed),
			fmt.Errorf("response is not a JSON array (%v), using escaped-newline split", err)
	}

	lines := make([]string, len(elems))
	for i, e := range elems {
		if s, ok := e.(string); ok {
			lines[i] = s
		} else {
			lines[i] = fmt.Sprint(e)
		}
	}
	return lines, nil
}

// splitEscapedLines splits on the literal `\n` escape sequence.
func splitEscapedLines(text string) []string {
	return strings.Split(text, `\n`)
}
