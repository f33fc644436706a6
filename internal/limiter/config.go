package limiter

import (
	"math"
	"sync"
	"time"

	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

// Config holds the tunable limiter parameters. The control loop reads a
// snapshot once per tick; the TUI, tray and hotkey goroutines write
// individual fields through the setters. All access is serialized by the
// one mutex here, which is never held across a sleep or an endpoint call.
type Config struct {
	mu sync.Mutex

	running bool

	volumeCap    float64
	attackTime   time.Duration
	releaseTime  time.Duration
	holdTime     time.Duration
	userCooldown time.Duration

	leewayDB       float64
	dampening      float64
	dampeningSpeed time.Duration

	stabilizerEnabled         bool
	stabilizerWindow          time.Duration
	stabilizerThreshold       int
	stabilizerMaxLeeway       float64
	stabilizerStep            float64
	stabilizerChangeThreshold float64
}

// Snapshot is a consistent copy of Config taken at the start of a tick.
type Snapshot struct {
	Running bool

	VolumeCap    float64
	AttackTime   time.Duration
	ReleaseTime  time.Duration
	HoldTime     time.Duration
	UserCooldown time.Duration

	LeewayDB       float64
	Dampening      float64
	DampeningSpeed time.Duration

	StabilizerEnabled         bool
	StabilizerWindow          time.Duration
	StabilizerThreshold       int
	StabilizerMaxLeeway       float64
	StabilizerStep            float64
	StabilizerChangeThreshold float64
}

// NewConfig creates a Config from persisted settings. The limiter starts
// enabled; pausing is a runtime action, not a persisted one.
func NewConfig(s models.Settings) *Config {
	c := &Config{running: true}
	c.Apply(s)
	return c
}

// Apply replaces every parameter from a flat settings snapshot, clamping
// out-of-range values at this write boundary.
func (c *Config) Apply(s models.Settings) {
	s = s.Clamped()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volumeCap = s.VolumeCap
	c.attackTime = secs(s.AttackTime)
	c.releaseTime = secs(s.ReleaseTime)
	c.holdTime = secs(s.HoldTime)
	c.userCooldown = secs(s.UserCooldown)
	c.leewayDB = s.LeewayDB
	c.dampening = s.Dampening
	c.dampeningSpeed = secs(s.DampeningSpeed)
	c.stabilizerEnabled = s.StabilizerEnabled
	c.stabilizerWindow = secs(s.StabilizerWindow)
	c.stabilizerThreshold = s.StabilizerThreshold
	c.stabilizerMaxLeeway = s.StabilizerMaxLeeway
	c.stabilizerStep = s.StabilizerStep
	c.stabilizerChangeThreshold = s.StabilizerChangeThreshold
}

// Settings returns the flat snapshot used for persistence. It always
// carries the configured base leeway, never the stabilizer-adjusted one.
func (c *Config) Settings() models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Settings{
		VolumeCap:                 c.volumeCap,
		AttackTime:                c.attackTime.Seconds(),
		ReleaseTime:               c.releaseTime.Seconds(),
		HoldTime:                  c.holdTime.Seconds(),
		UserCooldown:              c.userCooldown.Seconds(),
		LeewayDB:                  c.leewayDB,
		Dampening:                 c.dampening,
		DampeningSpeed:            c.dampeningSpeed.Seconds(),
		StabilizerEnabled:         c.stabilizerEnabled,
		StabilizerWindow:          c.stabilizerWindow.Seconds(),
		StabilizerThreshold:       c.stabilizerThreshold,
		StabilizerMaxLeeway:       c.stabilizerMaxLeeway,
		StabilizerStep:            c.stabilizerStep,
		StabilizerChangeThreshold: c.stabilizerChangeThreshold,
	}
}

// ResetDefaults restores every parameter except the volume cap, which the
// user keeps. The caller (Limiter.ResetDefaults) also clears stabilizer
// history.
func (c *Config) ResetDefaults() {
	keep := c.VolumeCap()
	s := models.DefaultSettings()
	s.VolumeCap = keep
	c.Apply(s)
}

// Snapshot copies all parameters under the lock.
func (c *Config) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Running:                   c.running,
		VolumeCap:                 c.volumeCap,
		AttackTime:                c.attackTime,
		ReleaseTime:               c.releaseTime,
		HoldTime:                  c.holdTime,
		UserCooldown:              c.userCooldown,
		LeewayDB:                  c.leewayDB,
		Dampening:                 c.dampening,
		DampeningSpeed:            c.dampeningSpeed,
		StabilizerEnabled:         c.stabilizerEnabled,
		StabilizerWindow:          c.stabilizerWindow,
		StabilizerThreshold:       c.stabilizerThreshold,
		StabilizerMaxLeeway:       c.stabilizerMaxLeeway,
		StabilizerStep:            c.stabilizerStep,
		StabilizerChangeThreshold: c.stabilizerChangeThreshold,
	}
}

// Running reports whether the limiter is enabled.
func (c *Config) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetRunning enables or disables limiting without stopping the loop.
func (c *Config) SetRunning(on bool) {
	c.mu.Lock()
	c.running = on
	c.mu.Unlock()
}

// ToggleRunning flips the enabled state and returns the new value.
func (c *Config) ToggleRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = !c.running
	return c.running
}

// VolumeCap returns the configured loudness cap.
func (c *Config) VolumeCap() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volumeCap
}

// SetVolumeCap sets the loudness cap, clamped to [0.01, 1].
func (c *Config) SetVolumeCap(v float64) {
	c.mu.Lock()
	c.volumeCap = clamp(v, 0.01, 1.0)
	c.mu.Unlock()
}

// AdjustVolumeCap nudges the cap by delta and returns the new value.
// Used by the global hotkeys.
func (c *Config) AdjustVolumeCap(delta float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volumeCap = clamp(c.volumeCap+delta, 0.01, 1.0)
	return c.volumeCap
}

func (c *Config) SetAttackTime(d time.Duration) {
	c.mu.Lock()
	c.attackTime = maxDur(d, 0)
	c.mu.Unlock()
}

func (c *Config) SetReleaseTime(d time.Duration) {
	c.mu.Lock()
	c.releaseTime = maxDur(d, 0)
	c.mu.Unlock()
}

func (c *Config) SetHoldTime(d time.Duration) {
	c.mu.Lock()
	c.holdTime = maxDur(d, 0)
	c.mu.Unlock()
}

func (c *Config) SetUserCooldown(d time.Duration) {
	c.mu.Lock()
	c.userCooldown = maxDur(d, 0)
	c.mu.Unlock()
}

// SetLeewayDB sets the base leeway. The stabilizer clamps its dynamic
// leeway against the new base on the next update.
func (c *Config) SetLeewayDB(db float64) {
	c.mu.Lock()
	c.leewayDB = clamp(db, 0, 24)
	if c.stabilizerMaxLeeway < c.leewayDB {
		c.stabilizerMaxLeeway = c.leewayDB
	}
	c.mu.Unlock()
}

func (c *Config) SetDampening(factor float64) {
	c.mu.Lock()
	if factor < 1 {
		factor = 1
	}
	c.dampening = factor
	c.mu.Unlock()
}

func (c *Config) SetDampeningSpeed(d time.Duration) {
	c.mu.Lock()
	c.dampeningSpeed = maxDur(d, 0)
	c.mu.Unlock()
}

func (c *Config) SetStabilizerEnabled(on bool) {
	c.mu.Lock()
	c.stabilizerEnabled = on
	c.mu.Unlock()
}

func (c *Config) StabilizerEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stabilizerEnabled
}

func (c *Config) SetStabilizerWindow(d time.Duration) {
	c.mu.Lock()
	c.stabilizerWindow = maxDur(d, time.Second)
	c.mu.Unlock()
}

func (c *Config) SetStabilizerThreshold(n int) {
	c.mu.Lock()
	if n < 2 {
		n = 2
	}
	c.stabilizerThreshold = n
	c.mu.Unlock()
}

func (c *Config) SetStabilizerMaxLeeway(db float64) {
	c.mu.Lock()
	if db < c.leewayDB {
		db = c.leewayDB
	}
	c.stabilizerMaxLeeway = db
	c.mu.Unlock()
}

func (c *Config) SetStabilizerStep(db float64) {
	c.mu.Lock()
	c.stabilizerStep = clamp(db, 0.1, 6.0)
	c.mu.Unlock()
}

func (c *Config) SetStabilizerChangeThreshold(v float64) {
	c.mu.Lock()
	c.stabilizerChangeThreshold = clamp(v, 0.01, 0.5)
	c.mu.Unlock()
}

// secs converts a settings value in seconds to a Duration, rounding so
// values like 0.15 survive a persistence round trip exactly.
func secs(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func maxDur(d, lo time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
