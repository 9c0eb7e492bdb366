// Package bench orchestrates one simulation run end to end: model library,
// netlist, simulator subprocess, waveform readback. The CLI and the GUI both
// drive this pipeline; it is strictly sequential and never retries.
package bench

import (
	"context"
	"fmt"
	"os"

	"github.com/OpenCircuitLab/SpiceTrace/internal/config"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/rawfile"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/sim"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/spicelib"
)

// DefaultModelLib is the model file looked up in the working directory when
// no path is given.
const DefaultModelLib = "lm7171.lib"

// DefaultTrace is the signal plotted when none is named.
const DefaultTrace = "V(vout)"

// Outcome is everything a completed run yields.
type Outcome struct {
	Netlist string
	Sub     spicelib.Subcircuit // zero value for the RC bench
	Result  *sim.Result
	Raw     *rawfile.RawFile
	Time    []float64
	Volts   []float64
	Trace   string
}

// RunOpAmp executes the op-amp bench: read the model library, generate the
// deck, run the simulator, read the requested trace back. The model file is
// checked first so a missing file aborts before any artifact is written.
func RunOpAmp(ctx context.Context, cfg *config.Config, p netlist.OpAmpParams, modelPath, trace string) (*Outcome, error) {
	if modelPath == "" {
		modelPath = DefaultModelLib
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	parser, err := spicelib.NewParser()
	if err != nil {
		return nil, err
	}
	lib, err := parser.ParseFile(modelPath)
	if err != nil {
		return nil, err
	}
	sub := lib.First()

	deck := netlist.BuildOpAmp(p, sub.Name, modelPath)
	out, err := runDeck(ctx, cfg, deck, "opamp_test", trace)
	if err != nil {
		return nil, err
	}
	out.Sub = sub
	return out, nil
}

// RunRC executes the RC low-pass bench.
func RunRC(ctx context.Context, cfg *config.Config, p netlist.RCParams, trace string) (*Outcome, error) {
	if trace == "" {
		trace = "V(out)"
	}
	deck := netlist.BuildRC(p)
	return runDeck(ctx, cfg, deck, "rc_lowpass", trace)
}

func runDeck(ctx context.Context, cfg *config.Config, deck, base, trace string) (*Outcome, error) {
	if trace == "" {
		trace = DefaultTrace
	}
	if cfg == nil {
		cfg = config.Default()
	}

	runner := sim.NewRunner(cfg.Simulator, cfg.WorkDir)
	runner.ExtraArgs = cfg.ExtraArgs

	res, err := runner.Run(ctx, deck, base)
	if err != nil {
		return nil, err
	}

	raw, err := rawfile.Read(res.RawPath)
	if err != nil {
		return nil, fmt.Errorf("no result to plot: %w", err)
	}
	volts, err := raw.Trace(trace)
	if err != nil {
		return nil, fmt.Errorf("no result to plot: %w", err)
	}
	time, err := raw.Time()
	if err != nil {
		return nil, fmt.Errorf("no result to plot: %w", err)
	}

	return &Outcome{
		Netlist: deck,
		Result:  res,
		Raw:     raw,
		Time:    time,
		Volts:   volts,
		Trace:   trace,
	}, nil
}
