package tui

import (
	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

// Backend is what the panel drives. Local means the panel owns the loop
// in-process; remote means another process (the tray or a headless run)
// owns it and the panel talks to it through the config file and signals.
type Backend interface {
	Telemetry() limiter.Telemetry
	Settings() models.Settings
	Apply(models.Settings) error
	Toggle() error
	Reset() error
	Close() error
}

// LocalBackend drives a limiter running inside this process.
type LocalBackend struct {
	Lim *limiter.Limiter
	Cfg *limiter.Config
	App *config.Config

	// Cleanup releases the audio device resources after the loop stops.
	Cleanup func() error
}

func (b *LocalBackend) Telemetry() limiter.Telemetry {
	return b.Lim.Telemetry()
}

func (b *LocalBackend) Settings() models.Settings {
	return b.Cfg.Settings()
}

func (b *LocalBackend) Apply(s models.Settings) error {
	b.Cfg.Apply(s)
	return nil
}

func (b *LocalBackend) Toggle() error {
	b.Cfg.ToggleRunning()
	return nil
}

func (b *LocalBackend) Reset() error {
	b.Lim.ResetDefaults()
	return nil
}

// Close stops the loop, persists the current settings and releases the
// audio device.
func (b *LocalBackend) Close() error {
	b.Lim.Stop()
	b.App.Limiter = b.Cfg.Settings()
	err := config.Save(b.App)
	if b.Cleanup != nil {
		if cerr := b.Cleanup(); err == nil {
			err = cerr
		}
	}
	return err
}

// RemoteBackend drives a limiter owned by another process. Settings
// changes are persisted and pushed with a reload signal; telemetry comes
// from the status file the daemon publishes at 1 Hz.
type RemoteBackend struct {
	PID int
	App *config.Config
}

func (b *RemoteBackend) Telemetry() limiter.Telemetry {
	st, err := daemon.ReadStatus()
	if err != nil {
		return limiter.Telemetry{}
	}
	return limiter.Telemetry{
		Peak:           st.Peak,
		Volume:         st.Volume,
		CurrentLeeway:  st.CurrentLeeway,
		BaseLeeway:     st.BaseLeeway,
		OriginalVolume: st.OriginalVolume,
		VolumeCap:      st.VolumeCap,
		Limiting:       st.Limiting,
		Running:        st.Running,
	}
}

func (b *RemoteBackend) Settings() models.Settings {
	return b.App.Limiter
}

func (b *RemoteBackend) Apply(s models.Settings) error {
	b.App.Limiter = s.Clamped()
	if err := config.Save(b.App); err != nil {
		return err
	}
	return daemon.Reload(b.PID)
}

func (b *RemoteBackend) Toggle() error {
	return daemon.Toggle(b.PID)
}

func (b *RemoteBackend) Reset() error {
	s := models.DefaultSettings()
	s.VolumeCap = b.App.Limiter.VolumeCap
	return b.Apply(s)
}

func (b *RemoteBackend) Close() error {
	// Every change was already persisted and pushed in Apply.
	return nil
}
