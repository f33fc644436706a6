package limiter

import (
	"testing"
	"time"

	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

func TestConfigSettingsRoundTrip(t *testing.T) {
	s := models.DefaultSettings()
	s.VolumeCap = 0.35
	s.AttackTime = 0.02
	s.LeewayDB = 4.5
	s.StabilizerEnabled = true

	cfg := NewConfig(s)
	got := cfg.Settings()

	if got != s {
		t.Errorf("settings round trip mismatch:\n got  %+v\n want %+v", got, s)
	}
}

func TestConfigClampsAtWriteBoundary(t *testing.T) {
	cfg := NewConfig(models.DefaultSettings())

	cfg.SetVolumeCap(-0.5)
	if got := cfg.VolumeCap(); got != 0.01 {
		t.Errorf("expected cap floored at 0.01, got %f", got)
	}

	cfg.SetVolumeCap(2.0)
	if got := cfg.VolumeCap(); got != 1.0 {
		t.Errorf("expected cap ceiling at 1.0, got %f", got)
	}

	cfg.SetAttackTime(-time.Second)
	if got := cfg.Snapshot().AttackTime; got != 0 {
		t.Errorf("expected negative attack time clamped to 0, got %v", got)
	}

	cfg.SetDampening(0.2)
	if got := cfg.Snapshot().Dampening; got != 1.0 {
		t.Errorf("expected dampening floored at 1.0, got %f", got)
	}
}

func TestConfigAdjustVolumeCap(t *testing.T) {
	cfg := NewConfig(models.DefaultSettings()) // cap 0.2

	if got := cfg.AdjustVolumeCap(0.05); !approx(got, 0.25, 1e-9) {
		t.Errorf("expected cap 0.25, got %f", got)
	}
	for i := 0; i < 30; i++ {
		cfg.AdjustVolumeCap(0.05)
	}
	if got := cfg.VolumeCap(); got != 1.0 {
		t.Errorf("expected cap clamped at 1.0 after repeated raises, got %f", got)
	}
	for i := 0; i < 40; i++ {
		cfg.AdjustVolumeCap(-0.05)
	}
	if got := cfg.VolumeCap(); got != 0.01 {
		t.Errorf("expected cap clamped at 0.01 after repeated lowers, got %f", got)
	}
}

func TestConfigRaisingBaseLeewayLiftsMax(t *testing.T) {
	cfg := NewConfig(models.DefaultSettings()) // max leeway 12

	cfg.SetLeewayDB(15)
	snap := cfg.Snapshot()
	if snap.StabilizerMaxLeeway < snap.LeewayDB {
		t.Errorf("expected max leeway lifted to base %f, got %f", snap.LeewayDB, snap.StabilizerMaxLeeway)
	}
}

func TestConfigToggleRunning(t *testing.T) {
	cfg := NewConfig(models.DefaultSettings())

	if !cfg.Running() {
		t.Fatal("expected limiter to start enabled")
	}
	if cfg.ToggleRunning() {
		t.Error("expected toggle to disable")
	}
	if cfg.ToggleRunning() != true {
		t.Error("expected second toggle to re-enable")
	}
}
