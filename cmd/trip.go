package cmd

import (
	"fmt"
	"os"
	"strings"

	"otpctl/pkg/config"
	"otpctl/pkg/exporter"
	"otpctl/pkg/format"
	"otpctl/pkg/otp"
	"otpctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Search trip patterns between two places",
	Long: `Search trip patterns between two places. Places are stop place ids
(NSR:StopPlace:337) or coordinates (59.91,10.75), optionally prefixed with a
label ("Oslo S::NSR:StopPlace:337"). Saved searches from a YAML file can be
used with --search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		prefs, err := config.Load()
		if err != nil {
			a.logger.Warn("could not load preferences", "err", err)
			prefs = &config.AppConfig{}
		}

		var info *otp.ServerInfo
		_ = spinner.New().
			Title("Connecting to server...").
			Action(func() {
				info, err = a.info.Load(cmd.Context())
			}).
			Run()
		if err != nil {
			a.logger.Warn("server info unavailable, using fallback time zone", "err", err)
		}
		p := tui.NewPresenter(tui.ResolveLocation(info, a.settings.Timezone))

		vars, err := tripVariables(cmd, prefs, p)
		if err != nil {
			return err
		}

		a.trips.SetVariables(vars)
		_ = spinner.New().
			Title(fmt.Sprintf("Searching trips from %s to %s...", vars.From, vars.To)).
			Action(func() {
				err = a.trips.Trigger(cmd.Context())
			}).
			Run()

		state := a.trips.Snapshot()
		p.Sync(state)

		fmt.Println("\n--- 🧭 Trip Patterns ---")
		fmt.Print(p.RenderResultList(state))
		if err != nil {
			return fmt.Errorf("trip search failed: %w", err)
		}
		if state.Result == nil || len(state.Result.TripPatterns) == 0 {
			return nil
		}
		if state.Result.NextPageCursor != "" {
			fmt.Printf("\nMore results: --page-cursor %s\n", state.Result.NextPageCursor)
		}

		exportPath, _ := cmd.Flags().GetString("export")
		if !cmd.Flags().Changed("select") && exportPath == "" {
			return nil
		}

		selected, _ := cmd.Flags().GetInt("select")
		idx := p.Select(selected-1, len(state.Result.TripPatterns))
		pattern := state.Result.TripPatterns[idx]

		fmt.Printf("\n--- 🗺️ Trip Pattern %d ---\n", idx+1)
		fmt.Print(p.RenderMap(pattern))

		if exportPath == "" {
			return nil
		}
		return exportPattern(pattern, idx, exportPath)
	},
}

func tripVariables(cmd *cobra.Command, prefs *config.AppConfig, p *tui.Presenter) (otp.TripQueryVariables, error) {
	var vars otp.TripQueryVariables

	if name, _ := cmd.Flags().GetString("search"); name != "" {
		path, _ := cmd.Flags().GetString("searches")
		if path == "" {
			path = prefs.SearchesFile
		}
		if path == "" {
			return vars, fmt.Errorf("no searches file given. Use --searches or 'otpctl config'")
		}
		searches, err := config.LoadSearches(path)
		if err != nil {
			return vars, err
		}
		found, ok := config.FindSearch(searches, name)
		if !ok {
			return vars, fmt.Errorf("no saved search named %q in %s", name, path)
		}
		vars = found.Variables
	}

	from, _ := cmd.Flags().GetString("from")
	if from == "" && vars.From.IsZero() {
		from = prefs.DefaultFrom
	}
	if from != "" {
		loc, err := otp.ParseLocation(from)
		if err != nil {
			return vars, fmt.Errorf("invalid --from: %w", err)
		}
		vars.From = loc
	}

	to, _ := cmd.Flags().GetString("to")
	if to == "" && vars.To.IsZero() {
		to = prefs.DefaultTo
	}
	if to != "" {
		loc, err := otp.ParseLocation(to)
		if err != nil {
			return vars, fmt.Errorf("invalid --to: %w", err)
		}
		vars.To = loc
	}

	if cmd.Flags().Changed("arrive-by") {
		vars.ArriveBy, _ = cmd.Flags().GetBool("arrive-by")
	}

	if when, _ := cmd.Flags().GetString("time"); strings.TrimSpace(when) != "" {
		t, err := format.ParseTimestamp(strings.TrimSpace(when), p.Location())
		if err != nil {
			return vars, fmt.Errorf("invalid --time: %w", err)
		}
		vars.DateTime = &t
	}

	if modes, _ := cmd.Flags().GetStringSlice("mode"); len(modes) > 0 {
		vars.Modes = modes
	} else if len(vars.Modes) == 0 {
		vars.Modes = append([]string(nil), prefs.DefaultModes...)
	}

	if cmd.Flags().Changed("num") {
		vars.NumTripPatterns, _ = cmd.Flags().GetInt("num")
	}
	if cursor, _ := cmd.Flags().GetString("page-cursor"); cursor != "" {
		vars.PageCursor = cursor
	}

	return vars, nil
}

func exportPattern(pattern otp.TripPattern, idx int, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(pattern, fmt.Sprintf("Trip pattern %d", idx+1), file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Printf("\nSuccessfully exported %d legs to %s\n", len(pattern.Legs), path)
	return nil
}

func init() {
	rootCmd.AddCommand(tripCmd)

	tripCmd.Flags().StringP("from", "f", "", "Origin place (defaults to the configured origin)")
	tripCmd.Flags().StringP("to", "t", "", "Destination place (defaults to the configured destination)")
	tripCmd.Flags().BoolP("arrive-by", "a", false, "Treat --time as the latest arrival time")
	tripCmd.Flags().String("time", "", "Departure or arrival time, e.g. 2026-03-04T08:15 (default now)")
	tripCmd.Flags().StringSliceP("mode", "m", nil, "Modes to use, e.g. --mode bus,rail,foot")
	tripCmd.Flags().IntP("num", "n", 0, "Number of trip patterns to ask for")
	tripCmd.Flags().String("page-cursor", "", "Cursor of a previous or next result page")
	tripCmd.Flags().StringP("search", "s", "", "Name of a saved search to run")
	tripCmd.Flags().String("searches", "", "YAML file with saved searches (defaults to the configured file)")
	tripCmd.Flags().Int("select", 1, "Show the leg map of this trip pattern (1-based)")
	tripCmd.Flags().StringP("export", "o", "", "Export the selected trip pattern to an .ics file")
}
