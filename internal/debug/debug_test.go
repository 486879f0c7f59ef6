package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		Disable()
		SetOutput(os.Stderr)
	})

	Log("hidden", "key", "value")
	if buf.Len() != 0 {
		t.Fatalf("Log() wrote output while disabled: %q", buf.String())
	}

	Enable()
	if !IsEnabled() {
		t.Fatal("IsEnabled() = false after Enable")
	}
	Log("visible", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "msg=visible") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected log output: %q", out)
	}
}
