package models

// Settings is the flat, serializable snapshot of all limiter parameters.
// Times are in seconds, levels and thresholds are linear [0,1] scalars,
// leeway values are in dB. This is the shape that gets persisted; the
// control loop keeps its own richer representation.
type Settings struct {
	VolumeCap                 float64 `json:"volume_cap"`
	AttackTime                float64 `json:"attack_time"`
	ReleaseTime               float64 `json:"release_time"`
	HoldTime                  float64 `json:"hold_time"`
	UserCooldown              float64 `json:"user_cooldown"`
	LeewayDB                  float64 `json:"leeway_db"`
	Dampening                 float64 `json:"dampening"`
	DampeningSpeed            float64 `json:"dampening_speed"`
	StabilizerEnabled         bool    `json:"stabilizer_enabled"`
	StabilizerWindow          float64 `json:"stabilizer_window"`
	StabilizerThreshold       int     `json:"stabilizer_threshold"`
	StabilizerMaxLeeway       float64 `json:"stabilizer_max_leeway"`
	StabilizerStep            float64 `json:"stabilizer_step"`
	StabilizerChangeThreshold float64 `json:"stabilizer_change_threshold"`
}

// DefaultSettings returns sensible defaults for the limiter
func DefaultSettings() Settings {
	return Settings{
		VolumeCap:                 0.2,  // Cap output at 20% loudness
		AttackTime:                0.05, // 50ms - wait for a sustained peak
		ReleaseTime:               0.5,  // 500ms ramp back to original volume
		HoldTime:                  0.15, // 150ms before release starts
		UserCooldown:              2.0,  // Leave the user alone for 2s
		LeewayDB:                  3.0,  // 3dB of partial-limiting margin
		Dampening:                 1.0,  // No extra attenuation for long peaks
		DampeningSpeed:            0.0,  // Instant when dampening is enabled
		StabilizerEnabled:         false,
		StabilizerWindow:          5.0,
		StabilizerThreshold:       5,
		StabilizerMaxLeeway:       12.0,
		StabilizerStep:            1.0,
		StabilizerChangeThreshold: 0.05,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Out-of-range values from the UI or a hand-edited config file are
// corrected here, at the write boundary, so the tick algorithm never has
// to defend against them.
func (s Settings) Clamped() Settings {
	s.VolumeCap = clampFloat(s.VolumeCap, 0.01, 1.0)
	s.AttackTime = maxFloat(s.AttackTime, 0)
	s.ReleaseTime = maxFloat(s.ReleaseTime, 0)
	s.HoldTime = maxFloat(s.HoldTime, 0)
	s.UserCooldown = maxFloat(s.UserCooldown, 0)
	s.LeewayDB = maxFloat(s.LeewayDB, 0)
	s.Dampening = maxFloat(s.Dampening, 1.0)
	s.DampeningSpeed = maxFloat(s.DampeningSpeed, 0)
	s.StabilizerWindow = maxFloat(s.StabilizerWindow, 1.0)
	if s.StabilizerThreshold < 2 {
		s.StabilizerThreshold = 2
	}
	s.StabilizerMaxLeeway = maxFloat(s.StabilizerMaxLeeway, s.LeewayDB)
	s.StabilizerStep = clampFloat(s.StabilizerStep, 0.1, 6.0)
	s.StabilizerChangeThreshold = clampFloat(s.StabilizerChangeThreshold, 0.01, 0.5)
	return s
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
