//go:build linux

package autostart

import (
	"os"
	"strings"
	"testing"
)

func TestEnableDisableRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if Enabled() {
		t.Fatal("expected autostart disabled in a fresh home")
	}

	if err := Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !Enabled() {
		t.Error("expected autostart enabled after Enable")
	}

	data, err := os.ReadFile(desktopEntryPath())
	if err != nil {
		t.Fatalf("reading desktop entry: %v", err)
	}
	entry := string(data)
	if !strings.Contains(entry, "[Desktop Entry]") {
		t.Error("expected a desktop entry header")
	}
	if !strings.Contains(entry, "systray") {
		t.Error("expected the entry to launch systray mode")
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if Enabled() {
		t.Error("expected autostart disabled after Disable")
	}

	// Disabling again must not error.
	if err := Disable(); err != nil {
		t.Errorf("Disable on missing entry: %v", err)
	}
}

func TestSync(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Sync(true); err != nil {
		t.Fatalf("Sync(true): %v", err)
	}
	if !Enabled() {
		t.Error("expected enabled after Sync(true)")
	}

	// Syncing to the current state is a no-op.
	if err := Sync(true); err != nil {
		t.Errorf("Sync(true) when already enabled: %v", err)
	}

	if err := Sync(false); err != nil {
		t.Fatalf("Sync(false): %v", err)
	}
	if Enabled() {
		t.Error("expected disabled after Sync(false)")
	}
}
