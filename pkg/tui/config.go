package tui

import (
	"fmt"
	"strings"

	"otpctl/pkg/config"
	"otpctl/pkg/format"
	"otpctl/pkg/otp"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Default Origin and Destination", "places"),
						huh.NewOption("Set Default Modes", "modes"),
						huh.NewOption("Set Saved Searches File", "searches"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "places":
			err = runSetPlacesTUI(cfg)
		case "modes":
			err = runSetModesTUI(cfg)
		case "searches":
			err = runSetSearchesFileTUI(cfg)
		case "view":
			fmt.Print(RenderConfig(cfg))
		}

		if err != nil {
			return err
		}
	}
}

// RenderConfig prints the persisted preferences.
func RenderConfig(cfg *config.AppConfig) string {
	orUnset := func(s string) string {
		if s == "" {
			return "Not set"
		}
		return s
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render("\n--- Current Configuration (~/.otpctl.json) ---") + "\n")
	fmt.Fprintf(&b, "Default From: %s\n", orUnset(cfg.DefaultFrom))
	fmt.Fprintf(&b, "Default To: %s\n", orUnset(cfg.DefaultTo))
	fmt.Fprintf(&b, "Default Modes: %s\n", orUnset(strings.Join(cfg.DefaultModes, ", ")))
	fmt.Fprintf(&b, "Searches File: %s\n", orUnset(cfg.SearchesFile))
	fmt.Fprintf(&b, "Accent Color: %s\n\n", orUnset(cfg.AccentColor))
	return b.String()
}

func runSetPlacesTUI(cfg *config.AppConfig) error {
	from, to := cfg.DefaultFrom, cfg.DefaultTo

	validate := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := otp.ParseLocation(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default origin").
				Description("Stop place id or lat,lon. Leave empty to clear.").
				Placeholder("e.g. Oslo S::NSR:StopPlace:337").
				Value(&from).
				Validate(validate),
			huh.NewInput().
				Title("Default destination").
				Placeholder("e.g. 59.95,10.75").
				Value(&to).
				Validate(validate),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultFrom = strings.TrimSpace(from)
	cfg.DefaultTo = strings.TrimSpace(to)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Default places saved.\n"))
	return nil
}

func runSetModesTUI(cfg *config.AppConfig) error {
	existing := make(map[string]bool)
	for _, m := range cfg.DefaultModes {
		existing[m] = true
	}

	var options []huh.Option[string]
	for _, m := range format.Modes() {
		opt := huh.NewOption(fmt.Sprintf("%s %s", colorBlock(format.ColorForMode(m)), format.ModeLabel(m)), m)
		if existing[m] {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select your default modes").
				Description("Space = toggle, Enter = confirm. Start typing to filter.").
				Options(options...).
				Value(&selected).
				Filterable(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultModes = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Saved %d default modes.\n", len(selected))))
	return nil
}

func runSetSearchesFileTUI(cfg *config.AppConfig) error {
	path := cfg.SearchesFile

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Path to your saved searches YAML file").
				Value(&path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := config.LoadSearches(s)
					return err
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.SearchesFile = strings.TrimSpace(path)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Searches file saved.\n"))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

// themePresets are the curated accent colours offered before a custom one.
var themePresets = []struct{ Name, Color string }{
	{"Charm Purple", "99"},
	{"Rail Green", format.ColorForMode(format.ModeRail)},
	{"Bicycle Blue", format.ColorForMode(format.ModeBicycle)},
	{"Tram Yellow", format.ColorForMode(format.ModeTram)},
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	options := make([]huh.Option[string], 0, len(themePresets)+1)
	for _, p := range themePresets {
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", colorBlock(p.Color), p.Name), p.Color))
	}
	options = append(options, huh.NewOption("✨ Custom Color", "custom"))

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for otpctl").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(options...).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Color").
					Description("A hex code with `#` (#FF00FF) or an ANSI number (0-255).").
					Placeholder("#").
					Value(&hexInput).
					Validate(config.ValidateAccentColor),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
