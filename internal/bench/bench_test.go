package bench

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/OpenCircuitLab/SpiceTrace/internal/config"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
)

const modelText = `* test op-amp model
.subckt TESTAMP in+ in- vcc vee out
E1 out 0 in+ in- 100k
.ends
`

// fakeSimulator builds a script that writes a two-variable binary rawfile
// and a log, standing in for ngspice batch mode.
func fakeSimulator(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake simulator script requires a POSIX shell")
	}

	// Pre-build the raw payload; the script only copies it into place.
	var raw bytes.Buffer
	const points = 8
	fmt.Fprintf(&raw, "Title: fake\nPlotname: Transient Analysis\nFlags: real\n")
	fmt.Fprintf(&raw, "No. Variables: 2\nNo. Points: %d\nVariables:\n", points)
	fmt.Fprintf(&raw, "\t0\ttime\ttime\n\t1\tV(vout)\tvoltage\n")
	fmt.Fprintf(&raw, "Binary:\n")
	for i := 0; i < points; i++ {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(i)*1e-6))
		raw.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(i)*0.1))
		raw.Write(b[:])
	}
	payload := filepath.Join(dir, "payload.raw")
	if err := os.WriteFile(payload, raw.Bytes(), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	script := fmt.Sprintf(`#!/bin/sh
raw=""; log=""
while [ $# -gt 0 ]; do
  case "$1" in
    -r) raw="$2"; shift ;;
    -o) log="$2"; shift ;;
  esac
  shift
done
cp %q "$raw"
printf 'simulation finished\n' > "$log"
`, payload)

	bin := filepath.Join(dir, "fakespice")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake simulator: %v", err)
	}
	return bin
}

func testConfig(t *testing.T, dir string) *config.Config {
	return &config.Config{
		Simulator: fakeSimulator(t, dir),
		WorkDir:   filepath.Join(dir, "work"),
	}
}

func TestRunOpAmpPipeline(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	model := filepath.Join(dir, "testamp.lib")
	if err := os.WriteFile(model, []byte(modelText), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	out, err := RunOpAmp(context.Background(), cfg, netlist.DefaultOpAmpParams(), model, "")
	if err != nil {
		t.Fatalf("RunOpAmp: %v", err)
	}

	if out.Sub.Name != "TESTAMP" {
		t.Errorf("subcircuit = %q", out.Sub.Name)
	}
	if !strings.Contains(out.Netlist, "XU2 N003 N001 VCC -VCC Vout TESTAMP") {
		t.Errorf("deck does not instantiate the model:\n%s", out.Netlist)
	}
	if len(out.Time) != len(out.Volts) || len(out.Time) == 0 {
		t.Errorf("trace lengths: time %d, volts %d", len(out.Time), len(out.Volts))
	}
	for _, p := range []string{out.Result.RawPath, out.Result.LogPath} {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("artifact %s missing or empty (%v)", p, err)
		}
	}
}

func TestRunOpAmpMissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	_, err := RunOpAmp(context.Background(), cfg, netlist.DefaultOpAmpParams(), filepath.Join(dir, "absent.lib"), "")
	if err == nil {
		t.Fatalf("expected error for missing model file")
	}
	if !strings.Contains(err.Error(), "model file not found") {
		t.Errorf("error = %v", err)
	}

	// Nothing may be created before the model check.
	if _, statErr := os.Stat(cfg.WorkDir); !os.IsNotExist(statErr) {
		t.Errorf("work dir should not exist after aborted run")
	}
}

func TestRunRCPipeline(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	// The fake simulator only knows V(vout); ask for it explicitly.
	out, err := RunRC(context.Background(), cfg, netlist.DefaultRCParams(), "v(VOUT)")
	if err != nil {
		t.Fatalf("RunRC: %v", err)
	}
	if len(out.Volts) == 0 {
		t.Errorf("empty trace")
	}
	if !strings.Contains(out.Netlist, "R1 in out 1k") {
		t.Errorf("deck missing R1 card:\n%s", out.Netlist)
	}
}

func TestRunRCMissingTrace(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	_, err := RunRC(context.Background(), cfg, netlist.DefaultRCParams(), "V(nothere)")
	if err == nil {
		t.Fatalf("expected error for unknown trace")
	}
	if !strings.Contains(err.Error(), "no result to plot") {
		t.Errorf("error = %v", err)
	}
}
