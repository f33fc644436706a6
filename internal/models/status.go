package models

import "time"

// Status describes a running limiter process. The run loop refreshes it on
// disk once per second so the status command and the tray applet can read
// it without talking to the process directly.
type Status struct {
	PID            int       `json:"pid"`
	Running        bool      `json:"running"`
	Limiting       bool      `json:"limiting"`
	Peak           float64   `json:"peak"`
	Volume         float64   `json:"volume"`
	OriginalVolume float64   `json:"original_volume"`
	VolumeCap      float64   `json:"volume_cap"`
	CurrentLeeway  float64   `json:"current_leeway_db"`
	BaseLeeway     float64   `json:"base_leeway_db"`
	StartTime      time.Time `json:"start_time"`
}
