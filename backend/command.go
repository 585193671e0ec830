package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Command backend (subprocess, prompt on stdin)
// ---------------------------------------------------------------------------

// CommandBackend pipes the request text to an external command's stdin
// and returns its stdout. This is the classic transport for CLI agents
// (e.g. a locally installed gemini binary).
type CommandBackend struct {
	argv    []string
	timeout time.Duration
}

// NewCommandBackend builds a subprocess backend from an argv.
func NewCommandBackend(argv []string, timeout time.Duration) (*CommandBackend, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, fmt.Errorf("command backend requires a command to run")
	}
	return &CommandBackend{argv: argv, timeout: timeout}, nil
}

// Send runs the command once. A non-zero exit reports stderr (falling
// back to stdout) as the failure reason.
func (b *CommandBackend) Send(ctx context.Context, prompt string) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, b.argv[0], b.argv[1:]...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = strings.TrimSpace(stdout.String())
		}
		if reason == "" {
			reason = err.Error()
		}
		return "", fmt.Errorf("%s: %s", b.argv[0], reason)
	}

	return strings.TrimSpace(stdout.String()), nil
}
