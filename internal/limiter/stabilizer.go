package limiter

import "time"

// adjustInterval is how often the stabilizer re-evaluates its leeway.
const adjustInterval = time.Second

// stabilizer widens the effective leeway when attenuation is triggering
// often enough to be heard as volume chatter, and decays it back toward
// the configured base when things calm down. It is owned by the control
// loop and only ever touched from the tick.
type stabilizer struct {
	current float64 // dynamic leeway in dB

	lastVolume  float64
	haveVolume  bool
	changeTimes []time.Time
	lastAdjust  time.Time
}

func newStabilizer(baseLeeway float64) *stabilizer {
	return &stabilizer{current: baseLeeway}
}

// leeway returns the effective leeway for this tick: the configured base
// when the stabilizer is off, otherwise the dynamic value clamped to
// [base, max].
func (s *stabilizer) leeway(snap Snapshot) float64 {
	if !snap.StabilizerEnabled {
		return snap.LeewayDB
	}
	s.current = clamp(s.current, snap.LeewayDB, snap.StabilizerMaxLeeway)
	return s.current
}

// track records a limiter-driven volume write. Only changes bigger than
// the configured threshold count toward the chatter window.
func (s *stabilizer) track(volume float64, now time.Time, snap Snapshot) {
	if !snap.StabilizerEnabled {
		return
	}
	if s.haveVolume && abs(volume-s.lastVolume) > snap.StabilizerChangeThreshold {
		s.changeTimes = append(s.changeTimes, now)
	}
	s.lastVolume = volume
	s.haveVolume = true
}

// update prunes the sliding window and adapts the leeway, at most once per
// adjustInterval. Between the full threshold and half of it nothing moves,
// so the leeway itself does not oscillate.
func (s *stabilizer) update(now time.Time, snap Snapshot) {
	if now.Sub(s.lastAdjust) < adjustInterval {
		return
	}
	s.lastAdjust = now

	cutoff := now.Add(-snap.StabilizerWindow)
	kept := s.changeTimes[:0]
	for _, t := range s.changeTimes {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	s.changeTimes = kept

	n := len(s.changeTimes)
	switch {
	case n >= snap.StabilizerThreshold:
		s.current = min(s.current+snap.StabilizerStep, snap.StabilizerMaxLeeway)
	case n < snap.StabilizerThreshold/2:
		s.current = max(s.current-snap.StabilizerStep/2, snap.LeewayDB)
	}
}

// reset drops all history and snaps the dynamic leeway back to base.
// Called when the stabilizer is disabled and on a defaults reset.
func (s *stabilizer) reset(baseLeeway float64) {
	s.current = baseLeeway
	s.changeTimes = nil
	s.haveVolume = false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
