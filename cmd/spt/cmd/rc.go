package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenCircuitLab/SpiceTrace/internal/bench"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/report"
)

var (
	rcParams  = netlist.DefaultRCParams()
	rcOutputs outputFlags
)

var rcCmd = &cobra.Command{
	Use:   "rc",
	Short: "Run the RC low-pass test bench",
	Long: `Generate the RC low-pass netlist driven by a sine source, run the
simulator, and plot the output trace. With --fft the magnitude spectrum is
plotted over the 1 kHz - 200 MHz band.

Examples:
  spt rc
  spt rc --r1 1k --c1 1u --stop 10m --plot rc.png --fft`,
	RunE: runRC,
}

func init() {
	rootCmd.AddCommand(rcCmd)

	rcCmd.Flags().Float64Var(&rcParams.R1, "r1", rcParams.R1, "series resistor, ohms")
	rcCmd.Flags().Float64Var(&rcParams.C1, "c1", rcParams.C1, "shunt capacitor, farads")
	rcCmd.Flags().Float64Var(&rcParams.Amplitude, "amplitude", rcParams.Amplitude, "source amplitude, volts")
	rcCmd.Flags().Float64Var(&rcParams.Frequency, "freq", rcParams.Frequency, "source frequency, hertz")
	rcCmd.Flags().Float64Var(&rcParams.Stop, "stop", rcParams.Stop, "transient stop time, seconds")
	rcOutputs.register(rcCmd, "V(out)")
}

func runRC(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	out, err := bench.RunRC(context.Background(), cfg, rcParams, rcOutputs.trace)
	if err != nil {
		return err
	}

	fmt.Printf("Simulation finished: %d points of %s\n", len(out.Time), out.Trace)
	fmt.Printf("Waveform: %s\n", out.Result.RawPath)
	fmt.Printf("Log:      %s\n", out.Result.LogPath)

	params := []report.Param{
		{Name: "R1", Value: netlist.FormatValue(rcParams.R1)},
		{Name: "C1", Value: netlist.FormatValue(rcParams.C1)},
		{Name: "amplitude", Value: netlist.FormatValue(rcParams.Amplitude)},
		{Name: "frequency", Value: netlist.FormatValue(rcParams.Frequency)},
		{Name: "stop", Value: netlist.FormatValue(rcParams.Stop)},
	}
	return writeOutputs(out, &rcOutputs, "Output Voltage vs Time", params)
}
