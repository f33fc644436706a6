// Package daemon manages the headless limiter process: its PID file, the
// on-disk status snapshot other invocations read, and the signals that
// drive toggle/reload/stop from the command line.
package daemon

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

// WritePID records the current process in the PID file.
func WritePID() error {
	return os.WriteFile(config.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// ReadPID returns the PID from the PID file.
func ReadPID() (int, error) {
	data, err := os.ReadFile(config.PIDFile)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed pid file: %w", err)
	}
	return pid, nil
}

// RemovePID cleans up the PID file on shutdown.
func RemovePID() {
	os.Remove(config.PIDFile)
}

// Running reports whether a limiter daemon is alive, returning its PID.
func Running() (int, bool) {
	pid, err := ReadPID()
	if err != nil {
		return 0, false
	}
	if !alive(pid) {
		return pid, false
	}
	return pid, true
}

// WriteStatus publishes the daemon's current state for status commands
// and the tray to read.
func WriteStatus(st models.Status) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(config.StatusFile, data, 0644)
}

// ReadStatus reads the last published daemon state.
func ReadStatus() (models.Status, error) {
	var st models.Status
	data, err := os.ReadFile(config.StatusFile)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("malformed status file: %w", err)
	}
	return st, nil
}

// RemoveStatus cleans up the status file on shutdown.
func RemoveStatus() {
	os.Remove(config.StatusFile)
}
