//go:build !windows

package daemon

import (
	"os"
	"testing"
	"time"

	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

func TestPIDRoundTrip(t *testing.T) {
	if err := WritePID(); err != nil {
		t.Fatalf("WritePID: %v", err)
	}
	defer RemovePID()

	pid, err := ReadPID()
	if err != nil {
		t.Fatalf("ReadPID: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("expected pid %d, got %d", os.Getpid(), pid)
	}

	got, running := Running()
	if !running || got != os.Getpid() {
		t.Errorf("expected own process reported running, got (%d, %v)", got, running)
	}
}

func TestRunningFalseWithoutPIDFile(t *testing.T) {
	RemovePID()

	if _, running := Running(); running {
		t.Error("expected not running when no pid file exists")
	}
}

func TestStatusRoundTrip(t *testing.T) {
	st := models.Status{
		PID:       os.Getpid(),
		Running:   true,
		Limiting:  true,
		Peak:      0.42,
		Volume:    0.25,
		VolumeCap: 0.2,
		StartTime: time.Now().Round(time.Second),
	}

	if err := WriteStatus(st); err != nil {
		t.Fatalf("WriteStatus: %v", err)
	}
	defer RemoveStatus()

	got, err := ReadStatus()
	if err != nil {
		t.Fatalf("ReadStatus: %v", err)
	}
	if !got.StartTime.Equal(st.StartTime) {
		t.Errorf("start time mismatch: got %v, want %v", got.StartTime, st.StartTime)
	}
	got.StartTime = st.StartTime
	if got != st {
		t.Errorf("status round trip mismatch:\n got  %+v\n want %+v", got, st)
	}
}
