// Package config — .scenkit.yaml project configuration support.
//
// When a .scenkit.yaml file exists next to the scenario files, its values
// become the run defaults. Command-line flags always win over the file.
// The file is optional; every field has a built-in default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file name.
const FileName = ".scenkit.yaml"

// DefaultSourceColumn is the header name of the source-language column
// when neither flag nor config overrides it.
const DefaultSourceColumn = "ru"

// DefaultPromptsDir is the template directory used when none is configured.
const DefaultPromptsDir = "prompts"

// File is the top-level .scenkit.yaml structure.
type File struct {
	// SourceColumn is the source-language header name (default "ru").
	SourceColumn string `yaml:"source_column,omitempty"`
	// Languages is the default target-language filter (empty = all).
	Languages []string `yaml:"languages,omitempty"`
	// Prompt is the default prompt template name.
	Prompt string `yaml:"prompt,omitempty"`
	// PromptsDir is the template directory (default "prompts").
	PromptsDir string `yaml:"prompts_dir,omitempty"`
	// Glossary is the path to the glossary YAML file.
	Glossary string `yaml:"glossary,omitempty"`
	// Resume, when set, makes resume mode the default.
	Resume *bool `yaml:"resume,omitempty"`
	// Provider is the default backend (command, gemini, openai, anthropic).
	Provider string `yaml:"provider,omitempty"`
	// Model is the default model name for API providers.
	Model string `yaml:"model,omitempty"`
	// Command is the argv for the command provider.
	Command []string `yaml:"command,omitempty"`
}

// Load reads .scenkit.yaml from dir. Returns nil (and no error) when the
// file does not exist.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	f.SourceColumn = strings.TrimSpace(f.SourceColumn)
	for i := range f.Languages {
		f.Languages[i] = strings.TrimSpace(f.Languages[i])
	}
	return &f, nil
}

// Defaults returns a File populated with built-in defaults. Callers merge
// a loaded file (if any) and then flags on top.
func Defaults() *File {
	return &File{
		SourceColumn: DefaultSourceColumn,
		Prompt:       "default",
		PromptsDir:   DefaultPromptsDir,
		Provider:     "command",
	}
}

// Merge overlays non-zero fields of other onto f and returns f.
func (f *File) Merge(other *File) *File {
	if other == nil {
		return f
	}
	if other.SourceColumn != "" {
		f.SourceColumn = other.SourceColumn
	}
	if len(other.Languages) > 0 {
		f.Languages = other.Languages
	}
	if other.Prompt != "" {
		f.Prompt = other.Prompt
	}
	if other.PromptsDir != "" {
		f.PromptsDir = other.PromptsDir
	}
	if other.Glossary != "" {
		f.Glossary = other.Glossary
	}
	if other.Resume != nil {
		f.Resume = other.Resume
	}
	if other.Provider != "" {
		f.Provider = other.Provider
	}
	if other.Model != "" {
		f.Model = other.Model
	}
	if len(other.Command) > 0 {
		f.Command = other.Command
	}
	return f
}
