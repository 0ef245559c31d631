package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...any) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("tick %d", 7)
	if got != "tick 7" {
		t.Fatalf("custom logger received %q", got)
	}

	got = ""
	SetLogger(nil)
	Logf("tick %d", 8)
	if got != "" {
		t.Fatalf("no-op logger should not forward, got %q", got)
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
}
