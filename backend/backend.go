// Package backend abstracts the external text-translation service.
//
// One Send call carries the full request text for one (file, language)
// task and returns either the raw response text or an error. The caller
// never sees transport detail — exit codes and HTTP status stay behind
// this interface. No retries are attempted; a failed task is the
// orchestrator's problem to count and move past.
package backend

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Backend is the translation service contract: one blocking call per task.
type Backend interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// Provider IDs.
const (
	ProviderCommand   = "command"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Options selects and configures a backend.
type Options struct {
	// Provider is the backend ID (command, gemini, openai, anthropic).
	Provider string
	// Command is the argv for the command provider; the prompt is piped
	// to its stdin and the response read from stdout.
	Command []string
	// APIKey authenticates API providers. Resolved from the environment
	// when empty (GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY).
	APIKey string
	// Model is the provider-specific model name (providers have defaults).
	Model string
	// Timeout bounds a single Send call. 0 means no explicit bound beyond
	// the caller's context.
	Timeout time.Duration
}

// New constructs the backend for the given options.
func New(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Provider {
	case ProviderCommand, "":
		return NewCommandBackend(opts.Command, opts.Timeout)
	case ProviderGemini:
		return NewGeminiBackend(ctx, resolveKey(opts.APIKey, "GEMINI_API_KEY"), opts.Model)
	case ProviderOpenAI:
		return NewOpenAIBackend(resolveKey(opts.APIKey, "OPENAI_API_KEY"), opts.Model)
	case ProviderAnthropic:
		return NewAnthropicBackend(resolveKey(opts.APIKey, "ANTHROPIC_API_KEY"), opts.Model)
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", opts.Provider)
	}
}

func resolveKey(flagValue, envVar string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envVar)
}
