package main

import (
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// splitLangs
// ---------------------------------------------------------------------------

func TestSplitLangs(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"en", []string{"en"}},
		{"en,jp", []string{"en", "jp"}},
		{" en , jp ", []string{"en", "jp"}},
		{"en,,jp,", []string{"en", "jp"}},
		{"", nil},
		{" , ", nil},
	}
	for _, c := range cases {
		if got := splitLangs(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitLangs(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// ---------------------------------------------------------------------------
// resolveConfig
// ---------------------------------------------------------------------------

func TestResolveConfig_FlagsWin(t *testing.T) {
	a := translateArgs{
		path:         t.TempDir(),
		langs:        "en,jp",
		sourceColumn: "src",
		provider:     "openai",
		command:      "my-agent --fast",
	}

	cfg, err := resolveConfig(a, false)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.SourceColumn != "src" {
		t.Errorf("SourceColumn = %q, want src", cfg.SourceColumn)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"en", "jp"}) {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if !reflect.DeepEqual(cfg.Command, []string{"my-agent", "--fast"}) {
		t.Errorf("Command = %v", cfg.Command)
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(translateArgs{path: t.TempDir()}, false)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.SourceColumn != "ru" || cfg.Prompt != "default" || cfg.Provider != "command" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Resume != nil {
		t.Error("Resume should be unset by default")
	}
}
