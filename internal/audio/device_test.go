package audio

import (
	"errors"
	"testing"
)

type fakeMeter struct{ peak float64 }

func (f *fakeMeter) Peak() float64 { return f.peak }

type fakeControl struct {
	volume   float64
	readErr  error
	writeErr error
	writes   []float64
}

func (f *fakeControl) Volume() (float64, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.volume, nil
}

func (f *fakeControl) SetVolume(level float64) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.volume = level
	f.writes = append(f.writes, level)
	return nil
}

func newTestDevice(t *testing.T, peak, volume float64) (*Device, *fakeMeter, *fakeControl) {
	t.Helper()
	m := &fakeMeter{peak: peak}
	c := &fakeControl{volume: volume}
	d, err := NewDevice(m, c)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return d, m, c
}

func TestNewDeviceRequiresInitialVolume(t *testing.T) {
	c := &fakeControl{readErr: errors.New("no backend")}
	if _, err := NewDevice(&fakeMeter{}, c); err == nil {
		t.Fatal("expected error when the initial volume read fails")
	}
}

func TestRawPeakNormalizesByVolume(t *testing.T) {
	d, _, _ := newTestDevice(t, 0.25, 0.5)

	// Meter reads 0.25 at 50% volume: the content peaks at 0.5.
	if got := d.RawPeak(); got != 0.5 {
		t.Errorf("expected normalized peak 0.5, got %f", got)
	}
}

func TestRawPeakCapsAtOne(t *testing.T) {
	d, _, _ := newTestDevice(t, 0.9, 0.3)

	if got := d.RawPeak(); got != 1.0 {
		t.Errorf("expected normalized peak capped at 1.0, got %f", got)
	}
}

func TestRawPeakSkipsNormalizationNearZeroVolume(t *testing.T) {
	d, _, _ := newTestDevice(t, 0.2, 0.005)

	if got := d.RawPeak(); got != 0.2 {
		t.Errorf("expected raw meter value at near-zero volume, got %f", got)
	}
}

func TestVolumeFallsBackToCacheOnError(t *testing.T) {
	d, _, c := newTestDevice(t, 0, 0.7)

	c.readErr = errors.New("backend gone")
	if got := d.Volume(); got != 0.7 {
		t.Errorf("expected cached volume 0.7, got %f", got)
	}

	c.readErr = nil
	c.volume = 0.4
	if got := d.Volume(); got != 0.4 {
		t.Errorf("expected fresh volume 0.4, got %f", got)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	d, _, c := newTestDevice(t, 0, 0.5)

	d.SetVolume(1.5)
	d.SetVolume(-0.2)

	if len(c.writes) != 2 || c.writes[0] != 1.0 || c.writes[1] != 0.0 {
		t.Errorf("expected clamped writes [1.0, 0.0], got %v", c.writes)
	}
}

func TestFailedWriteDoesNotRecordApplied(t *testing.T) {
	d, _, c := newTestDevice(t, 0, 0.5)

	c.writeErr = errors.New("backend busy")
	d.SetVolume(0.1)

	// The failed write left the system at 0.5; that must not read as a
	// user change against a phantom 0.1.
	if _, changed := d.DetectUserChange(); changed {
		t.Error("failed write misread as user change")
	}
}

func TestDetectUserChange(t *testing.T) {
	d, _, c := newTestDevice(t, 0, 0.5)

	if _, changed := d.DetectUserChange(); changed {
		t.Error("expected no change right after init")
	}

	d.SetVolume(0.3)
	if _, changed := d.DetectUserChange(); changed {
		t.Error("own write misread as user change")
	}

	c.volume = 0.8
	vol, changed := d.DetectUserChange()
	if !changed || vol != 0.8 {
		t.Errorf("expected user change to 0.8, got (%f, %v)", vol, changed)
	}

	// The new value was adopted; the same reading must not fire again.
	if _, changed := d.DetectUserChange(); changed {
		t.Error("user change reported twice for one adjustment")
	}
}

func TestDetectUserChangeIgnoresJitter(t *testing.T) {
	d, _, c := newTestDevice(t, 0, 0.5)

	c.volume = 0.505
	if _, changed := d.DetectUserChange(); changed {
		t.Error("sub-epsilon jitter misread as user change")
	}
}
