package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenCircuitLab/SpiceTrace/internal/bench"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/spicelib"
)

var (
	netlistParams = netlist.DefaultOpAmpParams()
	netlistRC     bool
)

var netlistCmd = &cobra.Command{
	Use:   "netlist [model.lib]",
	Short: "Print the generated netlist without running it",
	Long: `Generate the test bench netlist and print it to stdout. Useful for
checking the deck the simulator would receive.

Examples:
  spt netlist models/lm7171.lib
  spt netlist --rc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetlist,
}

func init() {
	rootCmd.AddCommand(netlistCmd)

	netlistCmd.Flags().BoolVar(&netlistRC, "rc", false, "print the RC low-pass bench instead of the op-amp bench")
	netlistCmd.Flags().Float64Var(&netlistParams.R9, "r9", netlistParams.R9, "gain resistor, ohms")
	netlistCmd.Flags().Float64Var(&netlistParams.R1, "r1", netlistParams.R1, "input resistor, ohms")
	netlistCmd.Flags().Float64Var(&netlistParams.R3, "r3", netlistParams.R3, "load resistor, ohms")
	netlistCmd.Flags().Float64Var(&netlistParams.C1, "c1", netlistParams.C1, "feedback capacitor, farads")
	netlistCmd.Flags().Float64Var(&netlistParams.Stop, "stop", netlistParams.Stop, "transient stop time, seconds")
}

func runNetlist(cmd *cobra.Command, args []string) error {
	if netlistRC {
		p := netlist.DefaultRCParams()
		p.Stop = netlistParams.Stop
		fmt.Print(netlist.BuildRC(p))
		return nil
	}

	modelPath := bench.DefaultModelLib
	if len(args) > 0 {
		modelPath = args[0]
	}
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model file not found: %s", modelPath)
	}

	parser, err := spicelib.NewParser()
	if err != nil {
		return err
	}
	lib, err := parser.ParseFile(modelPath)
	if err != nil {
		return err
	}

	fmt.Print(netlist.BuildOpAmp(netlistParams, lib.First().Name, modelPath))
	return nil
}
