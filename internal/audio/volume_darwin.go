//go:build darwin

package audio

import (
	"fmt"
	"os/exec"
)

// SystemVolume drives the macOS output volume through osascript.
type SystemVolume struct{}

func NewSystemVolume() (*SystemVolume, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, fmt.Errorf("osascript not found: %w", err)
	}
	return &SystemVolume{}, nil
}

func (s *SystemVolume) Volume() (float64, error) {
	out, err := exec.Command("osascript", "-e", "output volume of (get volume settings)").Output()
	if err != nil {
		return 0, fmt.Errorf("reading output volume: %w", err)
	}
	return parsePercent(string(out))
}

func (s *SystemVolume) SetVolume(level float64) error {
	script := fmt.Sprintf("set volume output volume %d", int(level*100+0.5))
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("setting output volume: %w", err)
	}
	return nil
}
