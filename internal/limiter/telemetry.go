package limiter

import "sync"

// telemetryBox hands the loop's display snapshot to UI threads. A plain
// mutex keeps it simple; readers poll at 10 Hz or slower.
type telemetryBox struct {
	mu sync.Mutex
	t  Telemetry
}

func (b *telemetryBox) store(t Telemetry) {
	b.mu.Lock()
	b.t = t
	b.mu.Unlock()
}

func (b *telemetryBox) load() Telemetry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.t
}
