//go:build windows

package audio

import (
	"fmt"
	"os/exec"
)

// SystemVolume drives the Windows master volume through PowerShell and
// the AudioDeviceCmdlets module.
type SystemVolume struct{}

func NewSystemVolume() (*SystemVolume, error) {
	if _, err := exec.LookPath("powershell"); err != nil {
		return nil, fmt.Errorf("powershell not found: %w", err)
	}
	return &SystemVolume{}, nil
}

func (s *SystemVolume) Volume() (float64, error) {
	out, err := exec.Command("powershell", "-NoProfile", "-Command",
		"(Get-AudioDevice -PlaybackVolume) -replace '%',''").Output()
	if err != nil {
		return 0, fmt.Errorf("reading playback volume: %w", err)
	}
	return parsePercent(string(out))
}

func (s *SystemVolume) SetVolume(level float64) error {
	cmd := fmt.Sprintf("Set-AudioDevice -PlaybackVolume %d", int(level*100+0.5))
	if err := exec.Command("powershell", "-NoProfile", "-Command", cmd).Run(); err != nil {
		return fmt.Errorf("setting playback volume: %w", err)
	}
	return nil
}
