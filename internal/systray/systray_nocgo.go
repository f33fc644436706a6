//go:build !cgo

package systray

import (
	"fmt"

	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
)

// Stub implementation for non-CGO builds
// System tray functionality requires CGO and is not available in this build.

type TrayState int

const (
	StateWatching TrayState = iota
	StateLimiting
	StatePaused
)

type Manager struct{}

func New(*limiter.Limiter, *limiter.Config) *Manager {
	return &Manager{}
}

func (m *Manager) ToggleChan() <-chan struct{} { return make(chan struct{}) }
func (m *Manager) PanelChan() <-chan struct{}  { return make(chan struct{}) }
func (m *Manager) QuitChan() <-chan struct{}   { return make(chan struct{}) }
func (m *Manager) OnReady()                    {}
func (m *Manager) OnExit()                     {}

func RunWithHandler(*limiter.Limiter, *limiter.Config, *config.Config) error {
	fmt.Println("System tray not available: this build was compiled without CGO support.")
	fmt.Println("Use 'kartoza-audio-limiter run' (headless) or the TUI instead.")
	return fmt.Errorf("systray not available: built without CGO")
}
