// Package audio adapts the machine's audio output to the limiter's
// endpoint contract: a peak meter for what is playing and a master volume
// control for how loud it comes out.
package audio

// VolumeControl is the platform master-volume backend.
type VolumeControl interface {
	// Volume returns the current output volume in [0,1].
	Volume() (float64, error)
	// SetVolume applies a volume in [0,1].
	SetVolume(level float64) error
}

// PeakSource supplies the most recent output peak level in [0,1].
type PeakSource interface {
	Peak() float64
}

// userChangeEpsilon is the volume delta past which a reading that differs
// from our last write counts as a manual user adjustment.
const userChangeEpsilon = 0.01

// Device composes a meter and a volume control into the endpoint the
// control loop polls. It caches the last known-good volume so transient
// backend failures read as "no change", and tracks the last value it
// applied so user adjustments can be told apart from its own writes.
//
// Device is used only from the loop goroutine and needs no locking.
type Device struct {
	meter PeakSource
	ctl   VolumeControl

	cachedVolume float64
	lastApplied  float64
}

// NewDevice builds a device around the given backends. The initial volume
// read must succeed; everything after that is best-effort.
func NewDevice(meter PeakSource, ctl VolumeControl) (*Device, error) {
	vol, err := ctl.Volume()
	if err != nil {
		return nil, err
	}
	return &Device{
		meter:        meter,
		ctl:          ctl,
		cachedVolume: vol,
		lastApplied:  vol,
	}, nil
}

// RawPeak returns the current peak normalized to what it would be at 100%
// volume. A meter reading of 0.25 at 50% volume means the content itself
// peaks at 0.5. When the volume reading is unusable the raw meter value
// is returned as-is.
func (d *Device) RawPeak() float64 {
	peak := d.meter.Peak()
	if d.cachedVolume > 0.01 {
		return min(1.0, peak/d.cachedVolume)
	}
	return peak
}

// Volume returns the current output volume, falling back to the cached
// value when the backend read fails.
func (d *Device) Volume() float64 {
	vol, err := d.ctl.Volume()
	if err != nil {
		return d.cachedVolume
	}
	d.cachedVolume = vol
	return vol
}

// SetVolume clamps and applies a volume. Failures are swallowed: the loop
// simply retries with fresh numbers on its next tick. The applied value is
// only recorded on success so a failed write cannot masquerade as a user
// change later.
func (d *Device) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	if err := d.ctl.SetVolume(level); err != nil {
		return
	}
	d.lastApplied = level
	d.cachedVolume = level
}

// DetectUserChange reports a volume that moved without us writing it.
// Adopting the new value means the same reading will not fire twice.
func (d *Device) DetectUserChange() (float64, bool) {
	current := d.Volume()
	if abs(current-d.lastApplied) > userChangeEpsilon {
		d.lastApplied = current
		return current, true
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
