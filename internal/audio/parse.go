package audio

import (
	"fmt"
	"strconv"
	"strings"
)

// parseWpctlVolume reads wpctl's "Volume: 0.65" (optionally "[MUTED]")
// output into a [0,1] level.
func parseWpctlVolume(out string) (float64, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "Volume:" {
		return 0, fmt.Errorf("unexpected wpctl output %q", strings.TrimSpace(out))
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parsing wpctl volume %q: %w", fields[1], err)
	}
	return clampLevel(v), nil
}

// parsePactlVolume pulls the first percentage out of pactl's sink volume
// listing, e.g. "Volume: front-left: 42000 /  64% / -11.67 dB, ...".
func parsePactlVolume(out string) (float64, error) {
	for _, field := range strings.Fields(out) {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
		if err != nil {
			continue
		}
		return clampLevel(pct / 100), nil
	}
	return 0, fmt.Errorf("no percentage in pactl output %q", strings.TrimSpace(out))
}

// parsePercent reads a bare integer percentage, as printed by osascript's
// "output volume of (get volume settings)".
func parsePercent(out string) (float64, error) {
	pct, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing volume percentage %q: %w", strings.TrimSpace(out), err)
	}
	return clampLevel(pct / 100), nil
}

func clampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
