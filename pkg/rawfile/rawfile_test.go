package rawfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBinaryRaw(t *testing.T, dir string, time, vout []float64) string {
	t.Helper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Title: * rc low-pass transient test bench\n")
	fmt.Fprintf(&buf, "Date: Thu Aug 28 12:00:00 2026\n")
	fmt.Fprintf(&buf, "Plotname: Transient Analysis\n")
	fmt.Fprintf(&buf, "Flags: real\n")
	fmt.Fprintf(&buf, "No. Variables: 2\n")
	fmt.Fprintf(&buf, "No. Points: %d\n", len(time))
	fmt.Fprintf(&buf, "Variables:\n")
	fmt.Fprintf(&buf, "\t0\ttime\ttime\n")
	fmt.Fprintf(&buf, "\t1\tV(vout)\tvoltage\n")
	fmt.Fprintf(&buf, "Binary:\n")
	for i := range time {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(time[i]))
		buf.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(vout[i]))
		buf.Write(b[:])
	}
	path := filepath.Join(dir, "out.raw")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write raw file: %v", err)
	}
	return path
}

func TestReadBinary(t *testing.T) {
	time := []float64{0, 1e-6, 2e-6, 3e-6}
	vout := []float64{0, 0.5, 0.9, 1.0}
	path := writeBinaryRaw(t, t.TempDir(), time, vout)

	rf, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rf.Plotname != "Transient Analysis" {
		t.Errorf("Plotname = %q", rf.Plotname)
	}
	if got := rf.Points(); got != len(time) {
		t.Errorf("Points = %d, want %d", got, len(time))
	}

	// Case-insensitive lookup.
	v, err := rf.Trace("v(VOUT)")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	ts, err := rf.Time()
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if len(ts) != len(v) {
		t.Errorf("time axis length %d != trace length %d", len(ts), len(v))
	}
	for i := range v {
		if v[i] != vout[i] {
			t.Errorf("sample %d = %g, want %g", i, v[i], vout[i])
		}
	}
}

func TestReadValues(t *testing.T) {
	text := strings.Join([]string{
		"Title: ascii raw",
		"Plotname: Transient Analysis",
		"Flags: real",
		"No. Variables: 2",
		"No. Points: 3",
		"Variables:",
		"\t0\ttime\ttime",
		"\t1\tV(out)\tvoltage",
		"Values:",
		" 0\t0.0",
		"\t1.0",
		" 1\t1.0e-3",
		"\t2.0",
		" 2\t2.0e-3",
		"\t3.0",
		"",
	}, "\n")

	path := filepath.Join(t.TempDir(), "ascii.raw")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rf, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	v, err := rf.Trace("V(out)")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("sample %d = %g, want %g", i, v[i], want[i])
		}
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "absent.raw")); err == nil {
		t.Errorf("absent file should be an error")
	}

	// Truncated binary section.
	path := writeBinaryRaw(t, dir, []float64{0, 1e-6}, []float64{0, 1})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-8], 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Errorf("truncated file should be an error")
	}

	// Header with no data section.
	empty := filepath.Join(dir, "empty.raw")
	if err := os.WriteFile(empty, []byte("Title: nothing\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Read(empty); err == nil {
		t.Errorf("header-only file should be an error")
	}
}

func TestTraceNotFound(t *testing.T) {
	path := writeBinaryRaw(t, t.TempDir(), []float64{0}, []float64{0})
	rf, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := rf.Trace("V(nope)"); !errors.Is(err, ErrTraceNotFound) {
		t.Errorf("expected ErrTraceNotFound, got %v", err)
	}
}
