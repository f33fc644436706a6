package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

type fakeBackend struct {
	settings models.Settings
	tel      limiter.Telemetry
	applied  int
	toggled  int
	resets   int
	closed   bool
}

func (f *fakeBackend) Telemetry() limiter.Telemetry { return f.tel }
func (f *fakeBackend) Settings() models.Settings    { return f.settings }
func (f *fakeBackend) Apply(s models.Settings) error {
	f.settings = s
	f.applied++
	return nil
}
func (f *fakeBackend) Toggle() error { f.toggled++; return nil }
func (f *fakeBackend) Reset() error {
	s := models.DefaultSettings()
	s.VolumeCap = f.settings.VolumeCap
	f.settings = s
	f.resets++
	return nil
}
func (f *fakeBackend) Close() error { f.closed = true; return nil }

func newTestPanel() (*Model, *fakeBackend) {
	b := &fakeBackend{
		settings: models.DefaultSettings(),
		tel:      limiter.Telemetry{Running: true, VolumeCap: 0.2},
	}
	return NewModel(b), b
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPanelAdjustClampsAtRangeEnds(t *testing.T) {
	m, b := newTestPanel()

	// First row is the volume cap, default 0.2 with 1% steps.
	for i := 0; i < 200; i++ {
		m.Update(key("l"))
	}
	if b.settings.VolumeCap != 1.0 {
		t.Errorf("expected cap clamped at 1.0, got %f", b.settings.VolumeCap)
	}

	for i := 0; i < 300; i++ {
		m.Update(key("h"))
	}
	if b.settings.VolumeCap != 0.01 {
		t.Errorf("expected cap clamped at 0.01, got %f", b.settings.VolumeCap)
	}
	if b.applied == 0 {
		t.Error("expected adjustments to be pushed to the backend")
	}
}

func TestPanelNavigationWraps(t *testing.T) {
	m, _ := newTestPanel()

	m.Update(key("k"))
	if m.selected != len(m.params)-1 {
		t.Errorf("expected selection to wrap to last row, got %d", m.selected)
	}

	m.Update(key("j"))
	if m.selected != 0 {
		t.Errorf("expected selection to wrap back to first row, got %d", m.selected)
	}
}

func TestPanelSpaceToggles(t *testing.T) {
	m, b := newTestPanel()

	m.Update(key(" "))
	if b.toggled != 1 {
		t.Errorf("expected one toggle, got %d", b.toggled)
	}
}

func TestPanelStabilizerKey(t *testing.T) {
	m, b := newTestPanel()

	m.Update(key("s"))
	if !b.settings.StabilizerEnabled {
		t.Error("expected stabilizer enabled after s")
	}
	m.Update(key("s"))
	if b.settings.StabilizerEnabled {
		t.Error("expected stabilizer disabled after second s")
	}
}

func TestPanelResetReloadsSettings(t *testing.T) {
	m, b := newTestPanel()

	// Change the attack, then reset: settings come back from the backend.
	m.Update(key("j"))
	m.Update(key("l"))
	if b.settings.AttackTime == models.DefaultSettings().AttackTime {
		t.Fatal("setup failed: attack unchanged")
	}

	m.Update(key("r"))
	if b.resets != 1 {
		t.Errorf("expected one reset, got %d", b.resets)
	}
	if m.settings != b.settings {
		t.Error("expected panel settings refreshed from backend after reset")
	}
}

func TestPanelQuitClosesBackend(t *testing.T) {
	m, b := newTestPanel()

	_, cmd := m.Update(key("q"))
	if !b.closed {
		t.Error("expected backend closed on quit")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestPanelTelemetryTick(t *testing.T) {
	m, b := newTestPanel()

	b.tel = limiter.Telemetry{Running: true, Limiting: true, Peak: 0.7}
	_, cmd := m.Update(telemetryTickMsg{})

	if !m.tel.Limiting || m.tel.Peak != 0.7 {
		t.Errorf("expected telemetry refreshed, got %+v", m.tel)
	}
	if cmd == nil {
		t.Error("expected the refresh to reschedule itself")
	}
}
