// Package prompt implements the named prompt-template store and the
// request-text builder.
//
// Templates are plain-text files in a prompts directory, one template per
// *.txt file, addressed by base name. Recognized placeholders:
//
//	{target_lang}  target language code
//	{text}         source lines joined by newline, in row order
//	{glossary}     optional glossary block position
//
// The "default" template is created on first use so a fresh checkout can
// translate without any setup.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultName is the template used when none is selected.
const DefaultName = "default"

// defaultTemplate mirrors the prompt the tool has always shipped with.
const defaultTemplate = `You are a professional translator. Translate the following scenario text from Russian (ru) to {target_lang}.
The text is a dialogue/script for a game or story. Maintain the context, tone, and character styles.
Output ONLY the translated lines, one per line, corresponding exactly to the input lines.
Input:
{text}`

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Store manages named templates under a single directory.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a template directory and ensures
// the default template exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating prompts directory: %w", err)
	}
	s := &Store{dir: dir}

	defaultPath := s.path(DefaultName)
	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		if _, err := s.Save(DefaultName, defaultTemplate); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the available template names, sorted.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the template text for a name.
func (s *Store) Load(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("prompt template %q not found in %s", name, s.dir)
		}
		return "", err
	}
	return string(data), nil
}

// Save writes a template and returns its path.
func (s *Store) Save(name, content string) (string, error) {
	path := s.path(name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing prompt template: %w", err)
	}
	return path, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}
