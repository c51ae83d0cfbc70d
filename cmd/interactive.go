package cmd

import (
	"otpctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to search trips, page through results, inspect legs and export them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return tui.NewContainer(a.info, a.trips, a.settings.Timezone).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
