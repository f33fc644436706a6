//go:build !windows

package daemon

import (
	"os"
	"os/signal"
	"syscall"
)

// Notify wires the daemon's control signals: SIGUSR1 toggles limiting,
// SIGHUP reloads settings from disk, SIGTERM/SIGINT shut down.
func Notify(ch chan<- os.Signal) {
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
}

// IsToggle reports whether sig asks the daemon to flip limiting on/off.
func IsToggle(sig os.Signal) bool {
	return sig == syscall.SIGUSR1
}

// IsReload reports whether sig asks the daemon to reload settings.
func IsReload(sig os.Signal) bool {
	return sig == syscall.SIGHUP
}

// Toggle asks a running daemon to flip limiting.
func Toggle(pid int) error {
	return syscall.Kill(pid, syscall.SIGUSR1)
}

// Reload asks a running daemon to re-read settings from disk.
func Reload(pid int) error {
	return syscall.Kill(pid, syscall.SIGHUP)
}

// Stop asks a running daemon to shut down cleanly.
func Stop(pid int) error {
	return syscall.Kill(pid, syscall.SIGTERM)
}

// alive probes the process without sending a signal.
func alive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
