package navigation

import (
	"strings"
	"testing"
)

// TestLoginPrompt verifies the prompt text reaches the writer.
func TestLoginPrompt(t *testing.T) {
	var buf strings.Builder
	Invoke(LoginPrompt(&buf))

	if !strings.Contains(buf.String(), "inkctl login") {
		t.Errorf("prompt = %q, want re-login instruction", buf.String())
	}
}

// TestInvoke_NilSafe verifies a nil navigator is a no-op, not a panic.
func TestInvoke_NilSafe(t *testing.T) {
	Invoke(nil)
	Invoke(Nop())
}
