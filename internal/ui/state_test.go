package ui

import (
	"errors"
	"testing"

	"github.com/OpenCircuitLab/SpiceTrace/internal/config"
)

func TestSetBusyRejectsOverlap(t *testing.T) {
	s := NewState(config.Default())
	if !s.SetBusy(true) {
		t.Fatal("first SetBusy(true) should succeed")
	}
	if s.SetBusy(true) {
		t.Error("second SetBusy(true) should be rejected while busy")
	}
	if !s.SetBusy(false) {
		t.Error("SetBusy(false) should always succeed")
	}
	if !s.SetBusy(true) {
		t.Error("SetBusy(true) should succeed after clearing")
	}
}

func TestSnapshotCopiesLogs(t *testing.T) {
	s := NewState(config.Default())
	s.AppendLog("first")
	snap := s.Snapshot()
	if len(snap.Logs) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(snap.Logs))
	}
	s.AppendLog("second")
	if len(snap.Logs) != 1 {
		t.Error("snapshot must not observe later log appends")
	}
}

func TestLogLimitTrimsOldest(t *testing.T) {
	s := NewState(config.Default())
	s.logLimit = 3
	for _, line := range []string{"a", "b", "c", "d"} {
		s.AppendLog(line)
	}
	snap := s.Snapshot()
	if len(snap.Logs) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(snap.Logs))
	}
}

func TestSetErrorSurfacesInStatusAndLog(t *testing.T) {
	s := NewState(config.Default())
	s.SetError(errors.New("simulator exited with status 1"))
	snap := s.Snapshot()
	if snap.Status != "Error" {
		t.Errorf("status = %q, want Error", snap.Status)
	}
	if snap.LastError == nil {
		t.Error("snapshot should carry the error")
	}
	if len(snap.Logs) == 0 {
		t.Error("error should be appended to the log")
	}
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState(nil)
	snap := s.Snapshot()
	if snap.Bench != benchOpAmp {
		t.Errorf("default bench = %q, want %q", snap.Bench, benchOpAmp)
	}
	if snap.ModelPath == "" {
		t.Error("default model path should be populated")
	}
	if snap.Busy {
		t.Error("new state should not be busy")
	}
}
