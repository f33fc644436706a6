package notify

import (
	"fmt"
	"os/exec"
)

// Urgency levels for notifications
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Send sends a desktop notification using notify-send
func Send(title, body string, urgency Urgency, icon string) error {
	args := []string{title, body}

	if urgency != "" {
		args = append(args, "--urgency="+string(urgency))
	}

	if icon != "" {
		args = append(args, "--icon="+icon)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// Info sends an informational notification
func Info(title, body string) error {
	return Send(title, body, UrgencyNormal, "audio-volume-high")
}

// Warning sends a warning notification
func Warning(title, body string) error {
	return Send(title, body, UrgencyLow, "dialog-warning")
}

// Error sends an error notification
func Error(title, body string) error {
	return Send(title, body, UrgencyCritical, "dialog-error")
}

// LimiterEnabled notifies that limiting has been switched on
func LimiterEnabled(cap float64) error {
	return Info("Audio Limiter", fmt.Sprintf("Limiting enabled, cap at %.0f%%", cap*100))
}

// LimiterDisabled notifies that limiting has been switched off
func LimiterDisabled() error {
	return Info("Audio Limiter", "Limiting disabled")
}

// CapChanged notifies the new volume cap after a hotkey adjustment
func CapChanged(cap float64) error {
	return Info("Audio Limiter", fmt.Sprintf("Volume cap: %.0f%%", cap*100))
}

// UserOverride notifies that a manual volume change paused limiting
func UserOverride(cooldown float64) error {
	return Send("Audio Limiter",
		fmt.Sprintf("Manual volume change detected, standing by for %.1fs", cooldown),
		UrgencyLow, "audio-volume-medium")
}

// DeviceLost warns that the audio backend stopped responding
func DeviceLost(detail string) error {
	return Error("Audio Limiter", "Lost the audio device: "+detail)
}
