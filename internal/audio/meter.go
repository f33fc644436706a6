package audio

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

// Meter samples the default input stream and keeps the absolute peak of
// the most recent buffer. On systems with a loopback/monitor source the
// default input mirrors what is being played, which is exactly the signal
// the limiter needs to watch.
type Meter struct {
	stream *portaudio.Stream
	peak   uint64 // math.Float64bits of the latest buffer peak
}

const (
	meterSampleRate = 44100
	meterBufferSize = 512
)

// NewMeter opens the capture stream and starts filling the peak value.
// Call Close when done; portaudio holds OS resources.
func NewMeter() (*Meter, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	m := &Meter{}
	stream, err := portaudio.OpenDefaultStream(1, 0, meterSampleRate, meterBufferSize, m.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening capture stream: %w", err)
	}
	m.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("starting capture stream: %w", err)
	}
	return m, nil
}

// process runs on portaudio's callback thread, so it only touches the
// atomic peak slot.
func (m *Meter) process(in []float32) {
	var peak float64
	for _, s := range in {
		if v := math.Abs(float64(s)); v > peak {
			peak = v
		}
	}
	if peak > 1 {
		peak = 1
	}
	atomic.StoreUint64(&m.peak, math.Float64bits(peak))
}

// Peak returns the peak of the most recently captured buffer in [0,1].
func (m *Meter) Peak() float64 {
	return math.Float64frombits(atomic.LoadUint64(&m.peak))
}

// Close stops the stream and releases portaudio.
func (m *Meter) Close() error {
	var first error
	if m.stream != nil {
		if err := m.stream.Stop(); err != nil {
			first = err
		}
		if err := m.stream.Close(); err != nil && first == nil {
			first = err
		}
		m.stream = nil
	}
	if err := portaudio.Terminate(); err != nil && first == nil {
		first = err
	}
	return first
}
