package deps

import (
	"strings"
	"testing"
)

func TestCheckFindsShell(t *testing.T) {
	// sh exists everywhere we run tests.
	result := Check(Dependency{Name: "sh", Description: "shell", Required: true})

	if !result.Available {
		t.Fatalf("expected sh to be available, got error %v", result.Error)
	}
	if result.Path == "" {
		t.Error("expected a resolved path for sh")
	}
}

func TestCheckMissing(t *testing.T) {
	result := Check(Dependency{Name: "definitely-not-a-real-binary-xyz", Required: true})

	if result.Available {
		t.Error("expected nonexistent binary to be unavailable")
	}
	if result.Error == nil {
		t.Error("expected a lookup error")
	}
}

func TestGetRequiredDepsNonEmpty(t *testing.T) {
	if len(GetRequiredDeps()) == 0 {
		t.Error("expected at least one required dependency on every platform")
	}
}

func TestFormatMissing(t *testing.T) {
	if got := FormatMissing(nil); got != "" {
		t.Errorf("expected empty string for no missing deps, got %q", got)
	}

	results := []CheckResult{
		{Dependency: Dependency{Name: "wpctl", Description: "PipeWire sink volume control"}},
	}
	got := FormatMissing(results)
	if !strings.Contains(got, "wpctl") {
		t.Errorf("expected formatted output to name the missing dep, got %q", got)
	}
}
