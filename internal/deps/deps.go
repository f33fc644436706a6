package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// AudioServer represents the sound server driving the default sink
type AudioServer string

const (
	AudioServerPipeWire   AudioServer = "pipewire"
	AudioServerPulseAudio AudioServer = "pulseaudio"
	AudioServerCoreAudio  AudioServer = "coreaudio"
	AudioServerWindows    AudioServer = "windows"
	AudioServerUnknown    AudioServer = "unknown"
)

// Dependency represents a required external dependency
type Dependency struct {
	Name        string // Command name (e.g., "wpctl")
	Description string // Human-readable description
	Required    bool   // If true, app cannot run without it
}

// CheckResult contains the result of checking a dependency
type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string // Path to the executable if found
	Error      error  // Error if check failed
}

// DetectAudioServer determines which volume backend will be used
func DetectAudioServer() AudioServer {
	switch runtime.GOOS {
	case "darwin":
		return AudioServerCoreAudio
	case "windows":
		return AudioServerWindows
	}
	if _, err := exec.LookPath("wpctl"); err == nil {
		return AudioServerPipeWire
	}
	if _, err := exec.LookPath("pactl"); err == nil {
		return AudioServerPulseAudio
	}
	return AudioServerUnknown
}

// GetAudioServerName returns a human-readable name for the audio server
func GetAudioServerName() string {
	switch DetectAudioServer() {
	case AudioServerPipeWire:
		return "PipeWire"
	case AudioServerPulseAudio:
		return "PulseAudio"
	case AudioServerCoreAudio:
		return "CoreAudio"
	case AudioServerWindows:
		return "Windows"
	default:
		return "Unknown"
	}
}

// GetRequiredDeps returns the required dependencies for this platform
func GetRequiredDeps() []Dependency {
	switch runtime.GOOS {
	case "darwin":
		return []Dependency{
			{Name: "osascript", Description: "Master volume control", Required: true},
		}
	case "windows":
		return []Dependency{
			{Name: "powershell", Description: "Master volume control (needs the AudioDeviceCmdlets module)", Required: true},
		}
	}

	// Linux: either volume backend will do; report the one in use.
	switch DetectAudioServer() {
	case AudioServerPulseAudio:
		return []Dependency{
			{Name: "pactl", Description: "PulseAudio sink volume control", Required: true},
		}
	default:
		return []Dependency{
			{Name: "wpctl", Description: "PipeWire sink volume control", Required: true},
		}
	}
}

// OptionalDeps lists optional dependencies that enhance functionality
var OptionalDeps = []Dependency{
	{
		Name:        "notify-send",
		Description: "Desktop notifications",
		Required:    false,
	},
	{
		Name:        "foot",
		Description: "Terminal for the tray's Open Panel action",
		Required:    false,
	},
	{
		Name:        "kitty",
		Description: "Terminal for the tray's Open Panel action",
		Required:    false,
	},
	{
		Name:        "alacritty",
		Description: "Terminal for the tray's Open Panel action",
		Required:    false,
	},
	{
		Name:        "gnome-terminal",
		Description: "Terminal for the tray's Open Panel action",
		Required:    false,
	},
	{
		Name:        "xterm",
		Description: "Terminal for the tray's Open Panel action",
		Required:    false,
	},
}

// Check verifies if a single dependency is available
func Check(dep Dependency) CheckResult {
	result := CheckResult{Dependency: dep}

	path, err := exec.LookPath(dep.Name)
	if err != nil {
		result.Available = false
		result.Error = err
	} else {
		result.Available = true
		result.Path = path
	}

	return result
}

// CheckAll verifies all required and optional dependencies
func CheckAll() (required []CheckResult, optional []CheckResult) {
	for _, dep := range GetRequiredDeps() {
		required = append(required, Check(dep))
	}
	for _, dep := range OptionalDeps {
		optional = append(optional, Check(dep))
	}
	return required, optional
}

// MissingRequired returns a list of missing required dependencies
func MissingRequired() []CheckResult {
	var missing []CheckResult
	for _, dep := range GetRequiredDeps() {
		result := Check(dep)
		if !result.Available {
			missing = append(missing, result)
		}
	}
	return missing
}

// HasAllRequired returns true if all required dependencies are available
func HasAllRequired() bool {
	return len(MissingRequired()) == 0
}

// FormatMissing returns a formatted string of missing dependencies
func FormatMissing(results []CheckResult) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing dependencies:\n\n")

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("  %s - %s\n", r.Dependency.Name, r.Dependency.Description))
	}

	return sb.String()
}
