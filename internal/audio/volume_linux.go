//go:build linux

package audio

import (
	"fmt"
	"os/exec"
	"strings"
)

// SystemVolume drives the default output sink through wpctl (PipeWire),
// falling back to pactl for plain PulseAudio setups.
type SystemVolume struct {
	usePactl bool
}

// NewSystemVolume picks whichever of wpctl/pactl is installed.
func NewSystemVolume() (*SystemVolume, error) {
	if _, err := exec.LookPath("wpctl"); err == nil {
		return &SystemVolume{}, nil
	}
	if _, err := exec.LookPath("pactl"); err == nil {
		return &SystemVolume{usePactl: true}, nil
	}
	return nil, fmt.Errorf("no volume backend found: install wpctl (pipewire) or pactl (pulseaudio)")
}

func (s *SystemVolume) Volume() (float64, error) {
	if s.usePactl {
		out, err := exec.Command("pactl", "get-sink-volume", "@DEFAULT_SINK@").Output()
		if err != nil {
			return 0, fmt.Errorf("pactl get-sink-volume: %w", err)
		}
		return parsePactlVolume(string(out))
	}
	out, err := exec.Command("wpctl", "get-volume", "@DEFAULT_AUDIO_SINK@").Output()
	if err != nil {
		return 0, fmt.Errorf("wpctl get-volume: %w", err)
	}
	return parseWpctlVolume(string(out))
}

func (s *SystemVolume) SetVolume(level float64) error {
	if s.usePactl {
		pct := fmt.Sprintf("%d%%", int(level*100+0.5))
		if err := exec.Command("pactl", "set-sink-volume", "@DEFAULT_SINK@", pct).Run(); err != nil {
			return fmt.Errorf("pactl set-sink-volume: %w", err)
		}
		return nil
	}
	arg := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", level), "0"), ".")
	if arg == "" {
		arg = "0"
	}
	if err := exec.Command("wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", arg).Run(); err != nil {
		return fmt.Errorf("wpctl set-volume: %w", err)
	}
	return nil
}
