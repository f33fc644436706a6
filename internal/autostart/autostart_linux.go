//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

func desktopEntryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "autostart", appName+".desktop")
}

func enable(exe string) error {
	path := desktopEntryPath()
	if path == "" {
		return fmt.Errorf("cannot resolve home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Kartoza Audio Limiter
Comment=Keeps sudden loud audio under a volume cap
Exec=%s systray
Icon=audio-volume-high
Terminal=false
X-GNOME-Autostart-enabled=true
`, exe)
	return os.WriteFile(path, []byte(entry), 0644)
}

func disable() error {
	path := desktopEntryPath()
	if path == "" {
		return fmt.Errorf("cannot resolve home directory")
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func enabled() bool {
	path := desktopEntryPath()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
