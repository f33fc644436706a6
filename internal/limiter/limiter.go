// Package limiter implements the volume limiting control loop: sustained
// peak detection with attack timing, proportional attenuation inside a
// leeway band, hold and timed release back to the user's volume, and an
// adaptive stabilizer that widens the leeway when attenuation is
// triggering too often.
package limiter

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// Endpoint is the audio backend the loop polls and drives. Implementations
// must be cheap and non-blocking; the loop calls them ~50 times a second
// and treats every failure as a skipped action, so they should swallow
// transient errors and fall back to cached values.
type Endpoint interface {
	// RawPeak returns the most recent output peak in [0,1], normalized as
	// if the output volume were 100%.
	RawPeak() float64
	// Volume returns the current output volume scalar in [0,1].
	Volume() float64
	// SetVolume clamps level to [0,1] and applies it best-effort.
	SetVolume(level float64)
	// DetectUserChange reports an out-of-band (user-driven) volume change.
	// When it fires, vol is the volume the user chose. It must not fire
	// again for the same value.
	DetectUserChange() (vol float64, changed bool)
}

// Telemetry is the loop's read-only view for UIs. Values are refreshed
// every tick; they are display data, not control state.
type Telemetry struct {
	Peak           float64
	Volume         float64
	CurrentLeeway  float64
	BaseLeeway     float64
	OriginalVolume float64
	VolumeCap      float64
	Limiting       bool
	Running        bool
}

// Tick pacing. The cooldown branch idles at the active rate so the loop
// notices the end of the cooldown promptly; the paused branch can afford
// to be lazier.
const (
	activeInterval = 20 * time.Millisecond
	pausedInterval = 50 * time.Millisecond

	// minAudiblePeak gates the threshold test so meter noise on a silent
	// signal cannot trigger limiting.
	minAudiblePeak = 0.001

	// releaseSnapDistance is how close to the original volume the release
	// ramp gets before snapping to it exactly.
	releaseSnapDistance = 0.005

	// fallbackReleaseRate restores volume when release time is zero,
	// in volume units per second.
	fallbackReleaseRate = 10.0
)

// Limiter runs the control loop against one endpoint. All state below is
// owned by the loop goroutine; the only cross-thread surfaces are Config,
// the telemetry snapshot, the reset request flag and Start/Stop.
type Limiter struct {
	cfg      *Config
	endpoint Endpoint
	stab     *stabilizer

	// Release target: the volume the user last chose, never a value the
	// loop wrote itself.
	originalVolume float64

	limiting     bool
	timeOver     time.Duration
	lastOverAt   time.Time
	lastOverride time.Time
	lastTick     time.Time

	// Set by ResetDefaults, drained by the tick. Keeps the state clear on
	// the loop goroutine instead of racing it from the caller's.
	resetPending atomic.Bool

	telemetry telemetryBox

	stop chan struct{}
	done chan struct{}
}

// New creates a limiter. The endpoint's current volume is adopted as the
// user's preferred volume.
func New(cfg *Config, endpoint Endpoint) *Limiter {
	l := &Limiter{
		cfg:            cfg,
		endpoint:       endpoint,
		stab:           newStabilizer(cfg.Snapshot().LeewayDB),
		originalVolume: endpoint.Volume(),
	}
	l.publish(cfg.Snapshot(), l.stab.current)
	return l
}

// Config returns the shared parameter set.
func (l *Limiter) Config() *Config { return l.cfg }

// Telemetry returns the latest published snapshot.
func (l *Limiter) Telemetry() Telemetry { return l.telemetry.load() }

// Start launches the loop goroutine. It fails if the loop is already
// running; loop-internal errors never surface here.
func (l *Limiter) Start() error {
	if l.stop != nil {
		return fmt.Errorf("limiter already started")
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run()
	return nil
}

// Stop signals the loop and waits for it to exit. The loop reacts within
// one tick period; the wait is bounded so a wedged endpoint cannot hang
// shutdown.
func (l *Limiter) Stop() error {
	if l.stop == nil {
		return nil
	}
	close(l.stop)
	select {
	case <-l.done:
	case <-time.After(time.Second):
		return fmt.Errorf("limiter loop did not stop in time")
	}
	l.stop = nil
	return nil
}

// ResetDefaults restores default parameters (keeping the volume cap) and
// asks the loop to clear stabilizer history and any in-progress limiting
// state. The parameter reset is immediate; the state clear happens on the
// loop's next tick, which also covers a loop that is not running yet.
func (l *Limiter) ResetDefaults() {
	l.cfg.ResetDefaults()
	l.resetPending.Store(true)
}

func (l *Limiter) run() {
	defer close(l.done)
	l.lastTick = time.Now()
	for {
		interval := l.tick(time.Now())
		select {
		case <-l.stop:
			return
		case <-time.After(interval):
		}
	}
}

// tick executes one pass of the control procedure and returns how long the
// loop should sleep before the next pass. It is deterministic given the
// clock value, which is what the tests exploit.
func (l *Limiter) tick(now time.Time) time.Duration {
	dt := now.Sub(l.lastTick)
	l.lastTick = now
	if dt < 0 {
		dt = 0
	}

	snap := l.cfg.Snapshot()

	if l.resetPending.CompareAndSwap(true, false) {
		l.stab.reset(snap.LeewayDB)
		l.limiting = false
		l.timeOver = 0
	}

	// Paused: drop sustain history so re-enabling starts fresh.
	if !snap.Running {
		l.timeOver = 0
		l.publish(snap, l.stab.leeway(snap))
		return pausedInterval
	}

	// The user always wins: adopt their volume as the new release target
	// and cancel any limiting in progress.
	if vol, changed := l.endpoint.DetectUserChange(); changed {
		l.originalVolume = vol
		l.limiting = false
		l.timeOver = 0
		l.lastOverride = now
	}

	// Back off entirely while the user is still adjusting.
	if !l.lastOverride.IsZero() && now.Sub(l.lastOverride) < snap.UserCooldown {
		l.publish(snap, l.stab.leeway(snap))
		return activeInterval
	}

	rawPeak := l.endpoint.RawPeak()
	// The loudness the user would hear at their preferred volume,
	// independent of any attenuation currently applied.
	potential := rawPeak * l.originalVolume

	leewayDB := l.stab.leeway(snap)
	leewayFactor := math.Pow(10, leewayDB/20)
	softThreshold := snap.VolumeCap * leewayFactor

	if potential > snap.VolumeCap && rawPeak > minAudiblePeak {
		l.timeOver += dt
		l.lastOverAt = now

		if l.timeOver >= snap.AttackTime {
			l.limiting = true
			l.attenuate(now, snap, rawPeak, potential, softThreshold)
		}
		// Below attack time the peak is treated as a transient and ignored.
	} else {
		l.timeOver = 0
		if l.limiting && now.Sub(l.lastOverAt) > snap.HoldTime {
			l.release(now, snap, dt)
		}
		// Within hold time the attenuated volume is held as-is.
	}

	l.publish(snap, l.stab.leeway(snap))

	if snap.StabilizerEnabled {
		l.stab.update(now, snap)
	} else {
		l.stab.reset(snap.LeewayDB)
	}

	return activeInterval
}

// attenuate computes and applies the target volume for a sustained peak.
func (l *Limiter) attenuate(now time.Time, snap Snapshot, rawPeak, potential, softThreshold float64) {
	// Position inside the leeway band: 0 at the cap (no attenuation yet),
	// 1 at the soft threshold (full attenuation).
	leewayRatio := 1.0
	if potential < softThreshold {
		leewayRatio = (potential - snap.VolumeCap) / (softThreshold - snap.VolumeCap)
	}

	// Long sustained peaks get squeezed progressively harder, ramping from
	// 1x at the attack point up to the dampening factor.
	sinceAttack := l.timeOver - snap.AttackTime
	ramp := 1.0
	if snap.DampeningSpeed > time.Millisecond {
		ramp = min(1.0, sinceAttack.Seconds()/snap.DampeningSpeed.Seconds())
	}
	sustained := clamp(1+(snap.Dampening-1)*ramp, 1, snap.Dampening)

	// The volume at which the current content would sit exactly at the cap.
	baseTarget := snap.VolumeCap / math.Max(rawPeak, 0.01)

	target := l.originalVolume*(1-leewayRatio) + baseTarget*leewayRatio
	target /= sustained
	target = clamp(target, 0.01, 1.0)

	l.stab.track(target, now, snap)
	l.endpoint.SetVolume(target)
}

// release ramps the volume back toward the user's preferred level at a
// rate that covers the full [0,1] span in exactly the release time.
func (l *Limiter) release(now time.Time, snap Snapshot, dt time.Duration) {
	current := l.endpoint.Volume()
	target := l.originalVolume

	if current < target-releaseSnapDistance {
		rate := fallbackReleaseRate
		if snap.ReleaseTime > 0 {
			rate = 1.0 / snap.ReleaseTime.Seconds()
		}
		next := min(current+rate*dt.Seconds(), target)
		l.stab.track(next, now, snap)
		l.endpoint.SetVolume(next)
		return
	}

	l.stab.track(target, now, snap)
	l.endpoint.SetVolume(target)
	l.limiting = false
}

func (l *Limiter) publish(snap Snapshot, leewayDB float64) {
	l.telemetry.store(Telemetry{
		Peak:           l.endpoint.RawPeak(),
		Volume:         l.endpoint.Volume(),
		CurrentLeeway:  leewayDB,
		BaseLeeway:     snap.LeewayDB,
		OriginalVolume: l.originalVolume,
		VolumeCap:      snap.VolumeCap,
		Limiting:       l.limiting,
		Running:        snap.Running,
	})
}
