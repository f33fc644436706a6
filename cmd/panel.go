package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kartoza/kartoza-audio-limiter/internal/audio"
	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/tui"
)

// runPanel opens the TUI control panel. When a limiter daemon or tray is
// already running, the panel attaches to it through the config file and
// control signals; otherwise it runs the loop itself.
func runPanel() error {
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var backend tui.Backend
	if pid, running := daemon.Running(); running {
		backend = &tui.RemoteBackend{PID: pid, App: appCfg}
	} else {
		backend, err = newLocalBackend(appCfg)
		if err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.NewModel(backend), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		backend.Close()
		return fmt.Errorf("running control panel: %w", err)
	}
	return nil
}

// newAudioDevice opens the peak meter and volume control and composes
// them into the endpoint the limiter polls. The returned cleanup releases
// the meter.
func newAudioDevice() (*audio.Device, func() error, error) {
	meter, err := audio.NewMeter()
	if err != nil {
		return nil, nil, fmt.Errorf("opening peak meter: %w", err)
	}

	ctl, err := audio.NewSystemVolume()
	if err != nil {
		meter.Close()
		return nil, nil, fmt.Errorf("opening volume control: %w", err)
	}

	device, err := audio.NewDevice(meter, ctl)
	if err != nil {
		meter.Close()
		return nil, nil, fmt.Errorf("probing audio device: %w", err)
	}

	return device, meter.Close, nil
}

// newLocalBackend builds the audio device, starts the limiter and wraps
// both for the panel.
func newLocalBackend(appCfg *config.Config) (*tui.LocalBackend, error) {
	device, cleanup, err := newAudioDevice()
	if err != nil {
		return nil, err
	}

	cfg := limiter.NewConfig(appCfg.Limiter)
	lim := limiter.New(cfg, device)
	if err := lim.Start(); err != nil {
		cleanup()
		return nil, err
	}

	return &tui.LocalBackend{
		Lim:     lim,
		Cfg:     cfg,
		App:     appCfg,
		Cleanup: cleanup,
	}, nil
}
