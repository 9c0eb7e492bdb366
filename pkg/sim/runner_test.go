package sim

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeSimulator writes a shell script that mimics the simulator's batch
// mode: it scans its arguments for -r/-o targets and writes them.
func fakeSimulator(t *testing.T, dir, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake simulator script requires a POSIX shell")
	}
	path := filepath.Join(dir, "fakespice")
	full := "#!/bin/sh\n" + script
	if err := os.WriteFile(path, []byte(full), 0o755); err != nil {
		t.Fatalf("write fake simulator: %v", err)
	}
	return path
}

const writeOutputs = `
raw=""; log=""
while [ $# -gt 0 ]; do
  case "$1" in
    -r) raw="$2"; shift ;;
    -o) log="$2"; shift ;;
  esac
  shift
done
printf 'Title: fake\n' > "$raw"
printf 'simulation finished\n' > "$log"
`

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	bin := fakeSimulator(t, dir, writeOutputs)

	r := NewRunner(bin, filepath.Join(dir, "work"))
	res, err := r.Run(context.Background(), "* deck\n.end\n", "bench")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, p := range []string{res.NetlistPath, res.RawPath, res.LogPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("missing artifact %s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", p)
		}
	}

	deck, err := os.ReadFile(res.NetlistPath)
	if err != nil {
		t.Fatalf("read netlist: %v", err)
	}
	if string(deck) != "* deck\n.end\n" {
		t.Errorf("netlist content = %q", deck)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	bin := fakeSimulator(t, dir, writeOutputs+`
printf 'Error: singular matrix\n' >> "$log"
exit 1
`)

	r := NewRunner(bin, filepath.Join(dir, "work"))
	_, err := r.Run(context.Background(), "* deck\n.end\n", "bench")
	if err == nil {
		t.Fatalf("expected run failure")
	}
	if !strings.Contains(err.Error(), "singular matrix") {
		t.Errorf("error should carry the log tail, got: %v", err)
	}
}

func TestRunMissingOutputs(t *testing.T) {
	dir := t.TempDir()
	bin := fakeSimulator(t, dir, "exit 0\n")

	r := NewRunner(bin, filepath.Join(dir, "work"))
	_, err := r.Run(context.Background(), "* deck\n.end\n", "bench")
	if err == nil {
		t.Fatalf("expected failure when outputs are missing")
	}
	if !strings.Contains(err.Error(), "no waveform output") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunOverwritesStaleOutputs(t *testing.T) {
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Stale raw file from an earlier run; the simulator writes nothing.
	if err := os.WriteFile(filepath.Join(work, "bench.raw"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale raw: %v", err)
	}
	bin := fakeSimulator(t, dir, "exit 0\n")

	r := NewRunner(bin, work)
	if _, err := r.Run(context.Background(), "* deck\n.end\n", "bench"); err == nil {
		t.Errorf("stale outputs must not count as fresh results")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner("", "")
	if r.Command != DefaultCommand {
		t.Errorf("default command = %q", r.Command)
	}
	if r.WorkDir == "" {
		t.Errorf("work dir should default")
	}
}
