package cmd

import (
	"github.com/spf13/cobra"

	appui "github.com/OpenCircuitLab/SpiceTrace/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive GUI",
	Long: `Launch the GUI with numeric controls for the bench parameters, a model
file picker, and an inline plot of the simulation output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := appui.NewState(loadConfig())
		return appui.Run(state)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
