//go:build windows

package daemon

import (
	"fmt"
	"os"
	"os/signal"
)

// Notify registers the interrupt signals Windows supports. Toggle and
// reload have no signal transport here; use the tray or the TUI instead.
func Notify(ch chan<- os.Signal) {
	signal.Notify(ch, os.Interrupt)
}

func IsToggle(os.Signal) bool { return false }

func IsReload(os.Signal) bool { return false }

func Toggle(int) error {
	return fmt.Errorf("toggling a running daemon is not supported on Windows; use the tray")
}

func Reload(int) error {
	return fmt.Errorf("reloading a running daemon is not supported on Windows; restart it")
}

// Stop terminates the daemon process.
func Stop(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

func alive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	p.Release()
	return true
}
