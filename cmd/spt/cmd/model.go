package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenCircuitLab/SpiceTrace/pkg/spicelib"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "SPICE model library operations",
	Long:  `Commands for inspecting SPICE model library files (.lib/.sub/.mod)`,
}

var modelInfoCmd = &cobra.Command{
	Use:   "info <model_file> [subcircuit]",
	Short: "Show model library information",
	Long: `Display the subcircuits declared in a SPICE model library.

Without subcircuit argument: lists every subcircuit
With subcircuit argument: shows details for that definition`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runModelInfo,
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelInfoCmd)
}

func runModelInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	parser, err := spicelib.NewParser()
	if err != nil {
		return err
	}
	lib, err := parser.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing model library: %w", err)
	}

	if len(args) >= 2 {
		return showSubcircuitDetails(lib, args[1])
	}

	fmt.Printf("Model library: %s\n", filename)
	fmt.Printf("Subcircuits: %d\n\n", len(lib.Subcircuits))
	for _, sub := range lib.Subcircuits {
		fmt.Printf("  %s (%d pins, %d cards)\n", sub.Name, len(sub.Pins), sub.Cards)
	}
	return nil
}

func showSubcircuitDetails(lib *spicelib.Library, name string) error {
	sub, ok := lib.Find(name)
	if !ok {
		return fmt.Errorf("subcircuit '%s' not found", name)
	}

	fmt.Printf("Subcircuit: %s\n", sub.Name)
	fmt.Printf("Cards: %d\n", sub.Cards)
	fmt.Printf("Pins (%d): %s\n", len(sub.Pins), strings.Join(sub.Pins, ", "))
	return nil
}
