package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	simulator string
	workDir   string
)

var rootCmd = &cobra.Command{
	Use:   "spt",
	Short: "SpiceTrace - run and visualize SPICE circuit simulations",
	Long: `SpiceTrace (spt) automates an external SPICE-class simulator:
  - generate a netlist from circuit parameters
  - run the simulator in batch mode
  - read the .raw waveform output and plot, analyze, or report it

Examples:
  spt ui                              # Launch interactive GUI
  spt run lm7171.lib --plot out.png   # Run the op-amp bench and plot
  spt rc --r1 1k --c1 1u --fft        # Run the RC bench with an FFT plot
  spt model info lm7171.lib           # Show subcircuits in a model file`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&simulator, "simulator", "", "simulator executable (default from config, else ngspice)")
	rootCmd.PersistentFlags().StringVar(&workDir, "out", "", "scratch directory for run artifacts (default from config)")
}
