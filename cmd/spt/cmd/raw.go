package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenCircuitLab/SpiceTrace/pkg/rawfile"
)

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Waveform file operations",
	Long:  `Commands for inspecting simulator .raw waveform files`,
}

var rawInfoCmd = &cobra.Command{
	Use:   "info <file.raw>",
	Short: "Show waveform file information",
	Args:  cobra.ExactArgs(1),
	RunE:  runRawInfo,
}

func init() {
	rootCmd.AddCommand(rawCmd)
	rawCmd.AddCommand(rawInfoCmd)
}

func runRawInfo(cmd *cobra.Command, args []string) error {
	rf, err := rawfile.Read(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Title:    %s\n", rf.Title)
	fmt.Printf("Plotname: %s\n", rf.Plotname)
	if len(rf.Flags) > 0 {
		fmt.Printf("Flags:    %s\n", strings.Join(rf.Flags, " "))
	}
	fmt.Printf("Points:   %d\n\n", rf.Points())

	fmt.Println("Traces:")
	for _, v := range rf.Variables {
		fmt.Printf("  %2d  %-20s %s\n", v.Index, v.Name, v.Kind)
	}
	return nil
}
