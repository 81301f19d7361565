package buildinfo

import (
	"strings"
	"testing"
)

func TestString_UsesLinkerValues(t *testing.T) {
	prevV, prevC, prevD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = prevV, prevC, prevD })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"
	if got := String(); got != "digitprobe v1.2.3 (commit=abc123, date=2026-01-02)" {
		t.Fatalf("unexpected build string: %q", got)
	}
}

func TestString_DevBuild(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, "digitprobe ") {
		t.Fatalf("unexpected build string: %q", got)
	}
}
