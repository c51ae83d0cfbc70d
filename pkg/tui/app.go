package tui

import (
	"otpctl/pkg/config"
	"otpctl/pkg/format"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DefaultAccent is used until the user picks a colour.
var DefaultAccent = format.ColorForMode(format.ModeBicycle)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// accent returns the persisted accent colour or DefaultAccent.
func accent() string {
	if cfg, err := config.Load(); err == nil && cfg.AccentColor != "" {
		return cfg.AccentColor
	}
	return DefaultAccent
}

// GetTheme builds the form theme from the saved accent colour and applies the
// same colour to plain printed headings.
func GetTheme() *huh.Theme {
	c := accent()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	return GetCustomTheme(c)
}

// GetCustomTheme returns the Charm theme recoloured with accentColor.
func GetCustomTheme(accentColor string) *huh.Theme {
	t := huh.ThemeCharm()
	a := lipgloss.Color(accentColor)
	dim := lipgloss.Color("238")

	f := &t.Focused
	f.Base = f.Base.Border(lipgloss.RoundedBorder()).BorderForeground(a).Padding(0, 1)
	f.Title = f.Title.Foreground(a).Bold(true)
	f.SelectSelector = f.SelectSelector.Foreground(a)
	f.MultiSelectSelector = f.MultiSelectSelector.Foreground(a)
	f.SelectedOption = f.SelectedOption.Foreground(a)
	f.SelectedPrefix = f.SelectedPrefix.Foreground(a)
	f.UnselectedPrefix = f.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	f.TextInput.Cursor = f.TextInput.Cursor.Foreground(a)
	f.TextInput.Prompt = f.TextInput.Prompt.Foreground(a)
	f.FocusedButton = f.FocusedButton.Foreground(lipgloss.Color("0")).Background(a)

	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(dim).Padding(0, 1)

	return t
}
