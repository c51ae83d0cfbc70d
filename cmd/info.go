package cmd

import (
	"fmt"

	"otpctl/pkg/otp"
	"otpctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the server build and configuration versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		var info *otp.ServerInfo
		_ = spinner.New().
			Title("Fetching server info...").
			Action(func() {
				info, err = a.info.Load(cmd.Context())
			}).
			Run()

		if err != nil {
			return fmt.Errorf("failed to fetch server info: %w", err)
		}

		p := tui.NewPresenter(tui.ResolveLocation(info, a.settings.Timezone))
		fmt.Printf("\n--- 🛰️ Server Info (%s) ---\n", a.settings.Endpoint())
		fmt.Print(p.RenderServerInfo(info))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
