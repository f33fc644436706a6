package limiter

import (
	"testing"
	"time"

	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

func stabSettings() Snapshot {
	s := models.DefaultSettings()
	s.LeewayDB = 3.0
	s.StabilizerEnabled = true
	s.StabilizerWindow = 5.0
	s.StabilizerThreshold = 5
	s.StabilizerMaxLeeway = 12.0
	s.StabilizerStep = 1.0
	s.StabilizerChangeThreshold = 0.05
	return NewConfig(s).Snapshot()
}

// chatter feeds n significant volume changes at now, alternating between
// two levels far enough apart to count.
func chatter(s *stabilizer, snap Snapshot, now time.Time, n int) {
	for i := 0; i < n; i++ {
		v := 0.2
		if i%2 == 0 {
			v = 0.8
		}
		s.track(v, now, snap)
	}
}

func TestStabilizerRaisesLeewayOnChatter(t *testing.T) {
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)

	chatter(s, snap, now, 6)
	s.update(now.Add(2*time.Second), snap)

	if got := s.leeway(snap); got != 4.0 {
		t.Errorf("expected leeway raised to 4.0, got %f", got)
	}
}

func TestStabilizerNeverExceedsMaxLeeway(t *testing.T) {
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)

	// Keep chattering for a long time; the leeway must clamp at max.
	for i := 0; i < 30; i++ {
		chatter(s, snap, now, 8)
		now = now.Add(2 * time.Second)
		s.update(now, snap)
	}

	if got := s.leeway(snap); got != snap.StabilizerMaxLeeway {
		t.Errorf("expected leeway clamped at %f, got %f", snap.StabilizerMaxLeeway, got)
	}
}

func TestStabilizerDecaysBackToBase(t *testing.T) {
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)

	chatter(s, snap, now, 8)
	now = now.Add(2 * time.Second)
	s.update(now, snap)
	if s.leeway(snap) <= snap.LeewayDB {
		t.Fatal("setup failed: expected raised leeway")
	}

	// Quiet period: windows empty out, leeway decays at half step.
	for i := 0; i < 60; i++ {
		now = now.Add(2 * time.Second)
		s.update(now, snap)
	}

	if got := s.leeway(snap); got != snap.LeewayDB {
		t.Errorf("expected decay back to base %f, got %f", snap.LeewayDB, got)
	}
}

func TestStabilizerHysteresisBand(t *testing.T) {
	// Change counts between threshold/2 and threshold leave the leeway
	// alone, in both directions.
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	s.current = 6.0
	now := time.Unix(2000, 0)

	chatter(s, snap, now, 3) // first write seeds, 2 count: >= 5/2, < 5
	now = now.Add(2 * time.Second)
	s.update(now, snap)

	if got := s.leeway(snap); got != 6.0 {
		t.Errorf("expected leeway unchanged at 6.0 inside hysteresis band, got %f", got)
	}
}

func TestStabilizerUpdateThrottled(t *testing.T) {
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)
	s.lastAdjust = now

	chatter(s, snap, now, 8)
	s.update(now.Add(500*time.Millisecond), snap)

	if got := s.leeway(snap); got != snap.LeewayDB {
		t.Errorf("expected no adjustment within the 1s interval, got %f", got)
	}
}

func TestStabilizerIgnoresSmallChanges(t *testing.T) {
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)

	// Steps of 2% against a 5% threshold: none should count.
	v := 0.50
	for i := 0; i < 10; i++ {
		v += 0.02
		s.track(v, now, snap)
	}
	s.update(now.Add(2*time.Second), snap)

	if got := s.leeway(snap); got != snap.LeewayDB {
		t.Errorf("expected leeway unchanged for sub-threshold writes, got %f", got)
	}
	if len(s.changeTimes) != 0 {
		t.Errorf("expected empty change window, got %d entries", len(s.changeTimes))
	}
}

func TestStabilizerDisableResets(t *testing.T) {
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)

	chatter(s, snap, now, 8)
	s.update(now.Add(2*time.Second), snap)
	if s.current == snap.LeewayDB {
		t.Fatal("setup failed: expected raised leeway")
	}

	s.reset(snap.LeewayDB)

	if s.current != snap.LeewayDB {
		t.Errorf("expected leeway back at base after reset, got %f", s.current)
	}
	if len(s.changeTimes) != 0 {
		t.Error("expected change window cleared after reset")
	}
}

func TestStabilizerBoundsUnderRandomishLoad(t *testing.T) {
	// For any mix of chatter and silence the dynamic leeway stays inside
	// [base, max].
	snap := stabSettings()
	s := newStabilizer(snap.LeewayDB)
	now := time.Unix(2000, 0)

	for i := 0; i < 200; i++ {
		if i%3 != 0 {
			chatter(s, snap, now, (i%7)+1)
		}
		now = now.Add(time.Duration(500+i*37) * time.Millisecond)
		s.update(now, snap)

		got := s.leeway(snap)
		if got < snap.LeewayDB || got > snap.StabilizerMaxLeeway {
			t.Fatalf("leeway %f escaped [%f, %f] at step %d", got, snap.LeewayDB, snap.StabilizerMaxLeeway, i)
		}
	}
}
