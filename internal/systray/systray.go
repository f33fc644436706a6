//go:build cgo

package systray

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"fyne.io/systray"
	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/kartoza/kartoza-audio-limiter/internal/hotkeys"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/models"
	"github.com/kartoza/kartoza-audio-limiter/internal/notify"
)

// TrayState represents the current state of the system tray
type TrayState int

const (
	StateWatching TrayState = iota // enabled, signal under the cap
	StateLimiting                  // actively attenuating
	StatePaused                    // limiting disabled
)

// Manager handles the system tray icon and menu
type Manager struct {
	lim *limiter.Limiter
	cfg *limiter.Config

	// Menu items
	mStatus *systray.MenuItem
	mToggle *systray.MenuItem
	mPanel  *systray.MenuItem
	mQuit   *systray.MenuItem

	// Channels for communication
	toggleChan chan struct{}
	panelChan  chan struct{}
	quitChan   chan struct{}

	// Current state
	currentState TrayState

	// Icons
	iconWatching []byte
	iconLimiting []byte
	iconPaused   []byte

	// Telemetry polling
	statusTicker *time.Ticker
	stopStatus   chan struct{}
}

// New creates a new systray manager around a started limiter.
func New(lim *limiter.Limiter, cfg *limiter.Config) *Manager {
	return &Manager{
		lim:          lim,
		cfg:          cfg,
		toggleChan:   make(chan struct{}, 1),
		panelChan:    make(chan struct{}, 1),
		quitChan:     make(chan struct{}, 1),
		stopStatus:   make(chan struct{}),
		currentState: StateWatching,
		iconWatching: renderDot(colorWatching),
		iconLimiting: renderDot(colorLimiting),
		iconPaused:   renderDot(colorPaused),
	}
}

// setIcon sets the appropriate icon based on current state
func (m *Manager) setIcon(state TrayState) {
	m.currentState = state

	switch state {
	case StateWatching:
		if m.iconWatching != nil {
			systray.SetIcon(m.iconWatching)
		}
	case StateLimiting:
		if m.iconLimiting != nil {
			systray.SetIcon(m.iconLimiting)
		}
	case StatePaused:
		if m.iconPaused != nil {
			systray.SetIcon(m.iconPaused)
		}
	}
}

// ToggleChan returns the channel that signals enable/disable clicks
func (m *Manager) ToggleChan() <-chan struct{} {
	return m.toggleChan
}

// PanelChan returns the channel that signals when to open the panel
func (m *Manager) PanelChan() <-chan struct{} {
	return m.panelChan
}

// QuitChan returns the channel that signals when to quit
func (m *Manager) QuitChan() <-chan struct{} {
	return m.quitChan
}

// OnReady is called when the systray is ready
func (m *Manager) OnReady() {
	m.setIcon(StateWatching)
	systray.SetTitle("Audio Limiter")
	systray.SetTooltip("Kartoza Audio Limiter")

	// Left-click toggles limiting.
	systray.SetOnTapped(func() {
		select {
		case m.toggleChan <- struct{}{}:
		default:
		}
	})

	// Menu items (shown on right-click)
	m.mStatus = systray.AddMenuItem("Watching", "Current status")
	m.mStatus.Disable()
	systray.AddSeparator()
	m.mToggle = systray.AddMenuItem("Disable Limiting", "Pause the limiter")
	m.mPanel = systray.AddMenuItem("Open Panel", "Open the control panel")
	systray.AddSeparator()
	m.mQuit = systray.AddMenuItem("Quit", "Quit the application")

	go m.handleClicks()

	m.startStatusPolling()
}

// OnExit is called when the systray is exiting
func (m *Manager) OnExit() {
	m.stopStatusPolling()
}

// handleClicks handles menu item clicks
func (m *Manager) handleClicks() {
	for {
		select {
		case <-m.mToggle.ClickedCh:
			select {
			case m.toggleChan <- struct{}{}:
			default:
			}
		case <-m.mPanel.ClickedCh:
			select {
			case m.panelChan <- struct{}{}:
			default:
			}
		case <-m.mQuit.ClickedCh:
			select {
			case m.quitChan <- struct{}{}:
			default:
			}
			return
		}
	}
}

// startStatusPolling refreshes the icon and tooltip from telemetry
func (m *Manager) startStatusPolling() {
	m.statusTicker = time.NewTicker(1 * time.Second)
	go func() {
		m.updateStatus()

		for {
			select {
			case <-m.statusTicker.C:
				m.updateStatus()
			case <-m.stopStatus:
				return
			}
		}
	}()
}

// stopStatusPolling stops the status polling
func (m *Manager) stopStatusPolling() {
	if m.statusTicker != nil {
		m.statusTicker.Stop()
		m.statusTicker = nil
	}
	select {
	case m.stopStatus <- struct{}{}:
	default:
	}
}

// updateStatus updates the tray from the latest telemetry
func (m *Manager) updateStatus() {
	tel := m.lim.Telemetry()

	state := StateWatching
	label := "Watching"
	switch {
	case !tel.Running:
		state = StatePaused
		label = "Disabled"
	case tel.Limiting:
		state = StateLimiting
		label = "Limiting"
	}

	if state != m.currentState {
		m.setIcon(state)
	}
	m.mStatus.SetTitle(label)

	if tel.Running {
		m.mToggle.SetTitle("Disable Limiting")
		m.mToggle.SetTooltip("Pause the limiter")
	} else {
		m.mToggle.SetTitle("Enable Limiting")
		m.mToggle.SetTooltip("Resume the limiter")
	}

	systray.SetTooltip(fmt.Sprintf("Audio Limiter: %s\nPeak %.0f%%  Volume %.0f%%  Cap %.0f%%",
		label, tel.Peak*100, tel.Volume*100, tel.VolumeCap*100))
}

// openPanel launches the TUI in a terminal
func (m *Manager) openPanel() error {
	exe, err := os.Executable()
	if err != nil {
		exe = "kartoza-audio-limiter"
	}

	terminals := []struct {
		cmd     string
		argsFmt func(args []string) []string
	}{
		{"foot", func(args []string) []string {
			return append([]string{"--title=Kartoza Audio Limiter", "-e"}, args...)
		}},
		{"kitty", func(args []string) []string {
			return append([]string{"--title=Kartoza Audio Limiter"}, args...)
		}},
		{"alacritty", func(args []string) []string {
			return append([]string{"--title", "Kartoza Audio Limiter", "-e"}, args...)
		}},
		{"gnome-terminal", func(args []string) []string {
			return append([]string{"--title=Kartoza Audio Limiter", "--"}, args...)
		}},
		{"xterm", func(args []string) []string {
			return append([]string{"-T", "Kartoza Audio Limiter", "-e"}, args...)
		}},
	}

	for _, term := range terminals {
		if _, err := exec.LookPath(term.cmd); err == nil {
			cmd := exec.Command(term.cmd, term.argsFmt([]string{exe})...)
			cmd.Stdin = nil
			cmd.Stdout = nil
			cmd.Stderr = nil
			return cmd.Start()
		}
	}

	return fmt.Errorf("no supported terminal emulator found")
}

// RunWithHandler starts the tray and owns the limiter for its lifetime:
// signal handling, hotkeys, status publishing and settings persistence
// all live here.
func RunWithHandler(lim *limiter.Limiter, cfg *limiter.Config, appCfg *config.Config) error {
	if err := lim.Start(); err != nil {
		return err
	}
	defer lim.Stop()

	if err := daemon.WritePID(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write pid file: %v\n", err)
	}
	defer daemon.RemovePID()
	defer daemon.RemoveStatus()

	// Control signals from the CLI and the panel.
	sigs := make(chan os.Signal, 4)
	daemon.Notify(sigs)

	// Global hotkeys are best-effort; some compositors refuse them.
	hk, err := hotkeys.Start(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: global hotkeys unavailable: %v\n", err)
	} else {
		defer hk.Stop()
	}

	manager := New(lim, cfg)
	go systray.Run(manager.OnReady, manager.OnExit)

	statusTicker := time.NewTicker(1 * time.Second)
	defer statusTicker.Stop()
	startTime := time.Now()

	saveSettings := func() {
		appCfg.Limiter = cfg.Settings()
		if err := config.Save(appCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save settings: %v\n", err)
		}
	}

	for {
		select {
		case <-manager.ToggleChan():
			if cfg.ToggleRunning() {
				notify.LimiterEnabled(cfg.VolumeCap())
			} else {
				notify.LimiterDisabled()
			}

		case <-manager.PanelChan():
			if err := manager.openPanel(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open panel: %v\n", err)
				notify.Warning("Audio Limiter", "Could not open the control panel: "+err.Error())
			}

		case <-manager.QuitChan():
			saveSettings()
			systray.Quit()
			return nil

		case sig := <-sigs:
			switch {
			case daemon.IsToggle(sig):
				cfg.SetRunning(!cfg.Running())
			case daemon.IsReload(sig):
				if fresh, err := config.Load(); err == nil {
					*appCfg = *fresh
					cfg.Apply(fresh.Limiter)
				}
			default:
				saveSettings()
				systray.Quit()
				return nil
			}

		case <-statusTicker.C:
			tel := lim.Telemetry()
			daemon.WriteStatus(models.Status{
				PID:            os.Getpid(),
				Running:        tel.Running,
				Limiting:       tel.Limiting,
				Peak:           tel.Peak,
				Volume:         tel.Volume,
				OriginalVolume: tel.OriginalVolume,
				VolumeCap:      tel.VolumeCap,
				CurrentLeeway:  tel.CurrentLeeway,
				BaseLeeway:     tel.BaseLeeway,
				StartTime:      startTime,
			})
		}
	}
}
