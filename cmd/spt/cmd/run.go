package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenCircuitLab/SpiceTrace/internal/bench"
	"github.com/OpenCircuitLab/SpiceTrace/internal/config"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/analysis"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/report"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/schematic"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/waveplot"
)

// outputFlags are shared by the run and rc commands.
type outputFlags struct {
	plotPath   string
	fft        bool
	schemPath  string
	reportPath string
	trace      string
}

func (o *outputFlags) register(cmd *cobra.Command, defaultTrace string) {
	cmd.Flags().StringVar(&o.plotPath, "plot", "", "save the time-domain plot to this file (.png/.svg/.pdf)")
	cmd.Flags().BoolVar(&o.fft, "fft", false, "also compute and save an FFT magnitude plot")
	cmd.Flags().StringVar(&o.schemPath, "schematic", "", "save a schematic SVG of the generated netlist")
	cmd.Flags().StringVar(&o.reportPath, "report", "", "save a spreadsheet report of the run")
	cmd.Flags().StringVar(&o.trace, "trace", defaultTrace, "signal to read from the waveform file")
}

var (
	runParams  = netlist.DefaultOpAmpParams()
	runOutputs outputFlags
)

var runCmd = &cobra.Command{
	Use:   "run [model.lib]",
	Short: "Run the op-amp test bench",
	Long: `Generate the op-amp test netlist, run the simulator against it, and
plot the output trace.

The optional argument names the op-amp model library; without it the file
"` + bench.DefaultModelLib + `" in the working directory is used. The first
subcircuit of the library is instantiated.

Examples:
  spt run
  spt run models/lm7171.lib --plot vout.png
  spt run --r9 2k --c1 10p --report run.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64Var(&runParams.R9, "r9", runParams.R9, "gain resistor, ohms")
	runCmd.Flags().Float64Var(&runParams.R1, "r1", runParams.R1, "input resistor, ohms")
	runCmd.Flags().Float64Var(&runParams.R3, "r3", runParams.R3, "load resistor, ohms")
	runCmd.Flags().Float64Var(&runParams.C1, "c1", runParams.C1, "feedback capacitor, farads")
	runCmd.Flags().Float64Var(&runParams.Stop, "stop", runParams.Stop, "transient stop time, seconds")
	runOutputs.register(runCmd, bench.DefaultTrace)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	modelPath := cfg.ModelLib
	if len(args) > 0 {
		modelPath = args[0]
	}
	if modelPath == "" {
		modelPath = bench.DefaultModelLib
	}

	if verbose {
		fmt.Printf("Model library: %s\n", modelPath)
	}

	out, err := bench.RunOpAmp(context.Background(), cfg, runParams, modelPath, runOutputs.trace)
	if err != nil {
		return err
	}

	fmt.Printf("Simulation finished: %d points of %s\n", len(out.Time), out.Trace)
	fmt.Printf("Waveform: %s\n", out.Result.RawPath)
	fmt.Printf("Log:      %s\n", out.Result.LogPath)

	params := []report.Param{
		{Name: "R9", Value: netlist.FormatValue(runParams.R9)},
		{Name: "R1", Value: netlist.FormatValue(runParams.R1)},
		{Name: "R3", Value: netlist.FormatValue(runParams.R3)},
		{Name: "C1", Value: netlist.FormatValue(runParams.C1)},
		{Name: "stop", Value: netlist.FormatValue(runParams.Stop)},
		{Name: "model", Value: out.Sub.Name},
	}
	return writeOutputs(out, &runOutputs, "Output Voltage vs Time", params)
}

// writeOutputs materializes the optional artifacts of a finished run.
func writeOutputs(out *bench.Outcome, flags *outputFlags, title string, params []report.Param) error {
	var plotPNG, fftPNG []byte

	if flags.plotPath != "" || flags.reportPath != "" {
		p, err := waveplot.TimePlot(title, waveplot.Series{Name: out.Trace, X: out.Time, Y: out.Volts})
		if err != nil {
			return err
		}
		if flags.plotPath != "" {
			if err := waveplot.Save(p, flags.plotPath); err != nil {
				return err
			}
			fmt.Printf("Plot:     %s\n", flags.plotPath)
		}
		if flags.reportPath != "" {
			if plotPNG, err = waveplot.PNG(p); err != nil {
				return err
			}
		}
	}

	if flags.fft {
		samples, dt, err := analysis.Resample(out.Time, out.Volts, spectrumPoints)
		if err != nil {
			return err
		}
		points, err := analysis.Spectrum(samples, dt)
		if err != nil {
			return err
		}
		p, err := waveplot.SpectrumPlot(points, fftBandLow, fftBandHigh)
		if err != nil {
			return err
		}
		path := flags.plotPath
		if path == "" {
			path = "fft.png"
		} else {
			path = fftPath(path)
		}
		if err := waveplot.Save(p, path); err != nil {
			return err
		}
		fmt.Printf("FFT plot: %s (peak %.4g Hz)\n", path, analysis.PeakFrequency(points))
		if flags.reportPath != "" {
			if fftPNG, err = waveplot.PNG(p); err != nil {
				return err
			}
		}
	}

	if flags.schemPath != "" {
		doc, err := schematic.RenderNetlist(out.Netlist)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.schemPath, doc, 0o644); err != nil {
			return fmt.Errorf("write schematic: %w", err)
		}
		fmt.Printf("Schematic: %s\n", flags.schemPath)
	}

	if flags.reportPath != "" {
		rep := &report.Report{
			Title:       title,
			Params:      params,
			Time:        out.Time,
			Volts:       out.Volts,
			Trace:       out.Trace,
			PlotPNG:     plotPNG,
			SpectrumPNG: fftPNG,
		}
		if vpp, err := analysis.Vpp(out.Time, out.Volts, out.Time[0], out.Time[len(out.Time)-1]); err == nil {
			rep.Measurements = append(rep.Measurements,
				report.Measurement{Name: "Vpp", Value: vpp.Vpp, Unit: "V"},
				report.Measurement{Name: "Vmax", Value: vpp.VMax, Unit: "V"},
				report.Measurement{Name: "Vmin", Value: vpp.VMin, Unit: "V"},
			)
		}
		if err := report.Write(flags.reportPath, rep); err != nil {
			return err
		}
		fmt.Printf("Report:   %s\n", flags.reportPath)
	}
	return nil
}

// FFT band of the RC bench; the magnitude plot is clipped to it.
const (
	fftBandLow     = 1e3
	fftBandHigh    = 200e6
	spectrumPoints = 1 << 14
)

// fftPath derives the FFT plot name from the time plot name.
func fftPath(plotPath string) string {
	ext := filepath.Ext(plotPath)
	return strings.TrimSuffix(plotPath, ext) + "_fft" + ext
}

// loadConfig merges the saved configuration with command-line overrides.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		}
		cfg = config.Default()
	}
	if simulator != "" {
		cfg.Simulator = simulator
	}
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	return cfg
}
