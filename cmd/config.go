package cmd

import (
	"fmt"

	"otpctl/pkg/config"
	"otpctl/pkg/otp"
	"otpctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage otpctl configuration",
	Long:  "View or edit your local configuration settings (default places, modes, saved searches and theme).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setFrom, _ := cmd.Flags().GetString("set-from")
		setTo, _ := cmd.Flags().GetString("set-to")
		setColor, _ := cmd.Flags().GetString("set-color")

		if setFrom == "" && setTo == "" && setColor == "" {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if setFrom != "" {
			if _, err := otp.ParseLocation(setFrom); err != nil {
				return fmt.Errorf("invalid --set-from: %w", err)
			}
			cfg.DefaultFrom = setFrom
		}
		if setTo != "" {
			if _, err := otp.ParseLocation(setTo); err != nil {
				return fmt.Errorf("invalid --set-to: %w", err)
			}
			cfg.DefaultTo = setTo
		}
		if setColor != "" {
			if err := config.ValidateAccentColor(setColor); err != nil {
				return fmt.Errorf("invalid --set-color: %w", err)
			}
			cfg.AccentColor = setColor
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Print(tui.RenderConfig(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-from", "", "Set the default origin")
	configCmd.Flags().String("set-to", "", "Set the default destination")
	configCmd.Flags().String("set-color", "", "Set the accent color (#rrggbb or ANSI 0-255)")
}
