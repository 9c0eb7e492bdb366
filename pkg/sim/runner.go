package sim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultCommand is the simulator binary invoked when none is configured.
// ngspice in batch mode reads a netlist and materializes .raw/.log files.
const DefaultCommand = "ngspice"

// Result names the artifacts of one run. All three live in the runner's
// working directory and are overwritten by the next run.
type Result struct {
	NetlistPath string
	RawPath     string
	LogPath     string
}

// Runner invokes the external simulator against a generated netlist. One
// run at a time: the call blocks until the subprocess exits, and the scratch
// directory is shared state reused across runs.
type Runner struct {
	Command   string   // simulator executable, defaults to DefaultCommand
	ExtraArgs []string // inserted before the standard batch arguments
	WorkDir   string   // scratch directory, created on demand
}

// NewRunner returns a runner writing into workDir.
func NewRunner(command, workDir string) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	if workDir == "" {
		workDir = "temp_sim_output"
	}
	return &Runner{Command: command, WorkDir: workDir}
}

// Run writes the netlist under base name and invokes the simulator
// synchronously. A non-zero exit or missing output files is a run failure;
// the error carries the tail of the simulator log when one exists. There is
// no retry and no timeout: a hung simulator blocks the caller.
func (r *Runner) Run(ctx context.Context, netlist, base string) (*Result, error) {
	if err := os.MkdirAll(r.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("sim: create work dir: %w", err)
	}

	res := &Result{
		NetlistPath: filepath.Join(r.WorkDir, base+".net"),
		RawPath:     filepath.Join(r.WorkDir, base+".raw"),
		LogPath:     filepath.Join(r.WorkDir, base+".log"),
	}
	if err := os.WriteFile(res.NetlistPath, []byte(netlist), 0o644); err != nil {
		return nil, fmt.Errorf("sim: write netlist: %w", err)
	}
	// Stale outputs from an earlier run must not pass for fresh ones.
	os.Remove(res.RawPath)
	os.Remove(res.LogPath)

	args := append([]string{}, r.ExtraArgs...)
	args = append(args, "-b", "-r", res.RawPath, "-o", res.LogPath, res.NetlistPath)

	cmd := exec.CommandContext(ctx, r.Command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("sim: %s failed: %w%s", r.Command, err, r.failureDetail(res, output))
	}

	if err := requireNonEmpty(res.RawPath); err != nil {
		return nil, fmt.Errorf("sim: no waveform output: %w%s", err, r.failureDetail(res, output))
	}
	if err := requireNonEmpty(res.LogPath); err != nil {
		return nil, fmt.Errorf("sim: no log output: %w", err)
	}
	return res, nil
}

func requireNonEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", path)
	}
	return nil
}

// failureDetail returns the simulator log tail, falling back to captured
// process output, formatted for appending to an error message.
func (r *Runner) failureDetail(res *Result, output []byte) string {
	detail := logTail(res.LogPath, 10)
	if detail == "" {
		detail = tailLines(string(output), 10)
	}
	if detail == "" {
		return ""
	}
	return "\n" + detail
}

func logTail(path string, n int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return tailLines(string(data), n)
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
