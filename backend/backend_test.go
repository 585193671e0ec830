package backend

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "carrier-pigeon"})
	if err == nil {
		t.Fatal("want error for unknown provider")
	}
	if !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Errorf("error should name the provider: %v", err)
	}
}

func TestNew_CommandIsDefault(t *testing.T) {
	be, err := New(context.Background(), Options{Command: []string{"cat"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := be.(*CommandBackend); !ok {
		t.Errorf("got %T, want *CommandBackend", be)
	}
}

func TestNew_CommandRequiresArgv(t *testing.T) {
	if _, err := New(context.Background(), Options{Provider: ProviderCommand}); err == nil {
		t.Error("want error when no command configured")
	}
}

// ---------------------------------------------------------------------------
// CommandBackend
// ---------------------------------------------------------------------------

func TestCommandBackend_Send(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires cat")
	}
	be, err := NewCommandBackend([]string{"cat"}, 0)
	if err != nil {
		t.Fatalf("NewCommandBackend: %v", err)
	}

	out, err := be.Send(context.Background(), "Привет!\nПока!\n")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	// Output is trimmed.
	if out != "Привет!\nПока!" {
		t.Errorf("out = %q", out)
	}
}

func TestCommandBackend_FailureReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	be, err := NewCommandBackend([]string{"sh", "-c", "echo rate limited >&2; exit 1"}, 0)
	if err != nil {
		t.Fatalf("NewCommandBackend: %v", err)
	}

	_, err = be.Send(context.Background(), "x")
	if err == nil {
		t.Fatal("want error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error should carry stderr: %v", err)
	}
}

func TestCommandBackend_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sleep")
	}
	be, err := NewCommandBackend([]string{"sleep", "5"}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCommandBackend: %v", err)
	}

	start := time.Now()
	_, err = be.Send(context.Background(), "x")
	if err == nil {
		t.Fatal("want error when the command exceeds the timeout")
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout did not take effect")
	}
}
