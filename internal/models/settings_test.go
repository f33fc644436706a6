package models

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.VolumeCap != 0.2 {
		t.Errorf("expected VolumeCap to be 0.2, got %f", s.VolumeCap)
	}
	if s.AttackTime != 0.05 {
		t.Errorf("expected AttackTime to be 0.05, got %f", s.AttackTime)
	}
	if s.Dampening != 1.0 {
		t.Errorf("expected Dampening to be 1.0, got %f", s.Dampening)
	}
	if s.StabilizerEnabled {
		t.Error("expected stabilizer to be disabled by default")
	}

	// Defaults must already be in range
	if s != s.Clamped() {
		t.Error("expected defaults to survive Clamped unchanged")
	}
}

func TestSettingsClamped(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		check  func(Settings) bool
	}{
		{
			"negative attack time",
			func(s *Settings) { s.AttackTime = -1 },
			func(s Settings) bool { return s.AttackTime == 0 },
		},
		{
			"cap above unity",
			func(s *Settings) { s.VolumeCap = 1.5 },
			func(s Settings) bool { return s.VolumeCap == 1.0 },
		},
		{
			"cap at zero",
			func(s *Settings) { s.VolumeCap = 0 },
			func(s Settings) bool { return s.VolumeCap == 0.01 },
		},
		{
			"dampening below unity",
			func(s *Settings) { s.Dampening = 0.5 },
			func(s Settings) bool { return s.Dampening == 1.0 },
		},
		{
			"negative leeway",
			func(s *Settings) { s.LeewayDB = -3 },
			func(s Settings) bool { return s.LeewayDB == 0 },
		},
		{
			"max leeway below base leeway",
			func(s *Settings) { s.LeewayDB = 6; s.StabilizerMaxLeeway = 3 },
			func(s Settings) bool { return s.StabilizerMaxLeeway == 6 },
		},
		{
			"stabilizer threshold too small",
			func(s *Settings) { s.StabilizerThreshold = 0 },
			func(s Settings) bool { return s.StabilizerThreshold == 2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if got := s.Clamped(); !tt.check(got) {
				t.Errorf("clamping failed: %+v", got)
			}
		})
	}
}
