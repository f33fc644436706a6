// Package autostart registers the limiter to start at login, using the
// native mechanism on each platform: an XDG autostart desktop entry on
// Linux, a LaunchAgent on macOS and the HKCU Run key on Windows.
package autostart

import "os"

const appName = "kartoza-audio-limiter"

// Enable registers the current executable to start at login in systray
// mode.
func Enable() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return enable(exe)
}

// Disable removes the login registration. Removing a registration that
// does not exist is not an error.
func Disable() error {
	return disable()
}

// Enabled reports whether the limiter is registered to start at login.
func Enabled() bool {
	return enabled()
}

// Sync brings the registration in line with the persisted preference.
func Sync(want bool) error {
	if want == Enabled() {
		return nil
	}
	if want {
		return Enable()
	}
	return Disable()
}
