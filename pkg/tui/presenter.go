package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"otpctl/pkg/format"
	"otpctl/pkg/otp"
	"otpctl/pkg/session"

	"github.com/charmbracelet/lipgloss"
)

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

// ResolveLocation picks the zone used for display: the server's transit model
// zone, then fallback, then UTC.
func ResolveLocation(info *otp.ServerInfo, fallback *time.Location) *time.Location {
	if info != nil && info.InternalTransitModelTimeZone != "" {
		if loc, err := time.LoadLocation(info.InternalTransitModelTimeZone); err == nil {
			return loc
		}
	}
	if fallback != nil {
		return fallback
	}
	return time.UTC
}

// Presenter renders server info, the result list and the map view. It owns the
// selected trip pattern index and hands its time zone to every formatting call.
type Presenter struct {
	mu       sync.Mutex
	loc      *time.Location
	selected int
}

func NewPresenter(loc *time.Location) *Presenter {
	if loc == nil {
		loc = time.UTC
	}
	return &Presenter{loc: loc}
}

// SetLocation changes the display time zone.
func (p *Presenter) SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loc = loc
}

// Location returns the display time zone.
func (p *Presenter) Location() *time.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loc
}

// Selected returns the index of the selected trip pattern.
func (p *Presenter) Selected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Select clamps i into [0, n) and makes it the selected pattern.
func (p *Presenter) Select(i, n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case n <= 0 || i < 0:
		i = 0
	case i >= n:
		i = n - 1
	}
	p.selected = i
	return i
}

// Sync keeps the selection valid for a new state.
func (p *Presenter) Sync(s session.State) {
	n := 0
	if s.Result != nil {
		n = len(s.Result.TripPatterns)
	}
	p.Select(p.Selected(), n)
}

func (p *Presenter) clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return format.FormatClock(t, p.Location(), format.StyleShort)
}

// RenderServerInfo describes the backend build.
func (p *Presenter) RenderServerInfo(info *otp.ServerInfo) string {
	if info == nil {
		return mutedStyle.Render("Server info not loaded yet.")
	}

	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = mutedStyle.Render("n/a")
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-22s", label)), value)
	}
	row("Version", info.Version)
	row("Build time", info.BuildTime)
	row("Git branch", info.GitBranch)
	row("Git commit", info.GitCommit)
	row("OTP config", info.OTPConfigVersion)
	row("Build config", info.BuildConfigVersion)
	row("Router config", info.RouterConfigVersion)
	row("Serialization ids", strings.Join(info.OTPSerializationVersionIDs, ", "))
	row("Time zone", info.InternalTransitModelTimeZone)
	return b.String()
}

// RenderResultList lists the trip patterns of the state, marking the selection.
func (p *Presenter) RenderResultList(s session.State) string {
	var b strings.Builder

	if s.Loading {
		b.WriteString(mutedStyle.Render("Searching...") + "\n")
	}
	if s.Err != nil {
		b.WriteString(errorStyle.Render("⚠ "+s.Err.Error()) + "\n")
	}
	if s.Result == nil {
		if !s.Loading && s.Err == nil {
			b.WriteString(mutedStyle.Render("No search yet.") + "\n")
		}
		return b.String()
	}
	if len(s.Result.TripPatterns) == 0 {
		b.WriteString("No trip patterns found.\n")
		return b.String()
	}

	selected := p.Selected()
	for _, sum := range otp.Summarize(s.Result) {
		marker := "  "
		if sum.Index == selected {
			marker = accentStyle.Render("▶ ")
		}
		fmt.Fprintf(&b, "%s%d. [%s – %s] %s  %s  %s\n",
			marker,
			sum.Index+1,
			timeStyle.Render(p.clock(sum.Start)),
			timeStyle.Render(p.clock(sum.End)),
			format.FormatDuration(sum.Duration),
			format.FormatDistance(sum.Distance),
			p.renderChain(sum),
		)
	}
	return b.String()
}

func (p *Presenter) renderChain(sum otp.PatternSummary) string {
	parts := make([]string, 0, len(sum.Legs))
	for _, l := range sum.Legs {
		parts = append(parts, modeStyle(l.Mode).Render(l.Label()))
	}
	return strings.Join(parts, mutedStyle.Render(" → "))
}

func modeStyle(mode string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(format.ColorForMode(mode))).Bold(true)
}

// RenderMap draws the selected pattern leg by leg with its decoded geometry.
func (p *Presenter) RenderMap(pattern otp.TripPattern) string {
	var b strings.Builder

	var all []otp.Point
	for i, leg := range pattern.Legs {
		swatch := modeStyle(leg.Mode).Render("██")
		name := format.ModeLabel(leg.Mode)
		if leg.Line != nil {
			code := leg.Line.PublicCode
			if code == "" {
				code = leg.Line.Name
			}
			name += " " + code
		}

		fmt.Fprintf(&b, "%s %d. [%s] %s: %s → %s (%s)\n",
			swatch,
			i+1,
			timeStyle.Render(p.clock(leg.AimedStartTime)),
			labelStyle.Render(name),
			leg.FromPlace.Name,
			leg.ToPlace.Name,
			mutedStyle.Render("Arrive: "+p.clock(leg.AimedEndTime)+", "+format.FormatDistance(leg.Distance)),
		)

		points, err := leg.Coordinates()
		switch {
		case err != nil:
			fmt.Fprintf(&b, "     %s\n", errorStyle.Render(err.Error()))
		case len(points) == 0:
			fmt.Fprintf(&b, "     %s\n", mutedStyle.Render("no geometry"))
		default:
			first, last := points[0], points[len(points)-1]
			fmt.Fprintf(&b, "     %s\n", mutedStyle.Render(fmt.Sprintf("%d points, %.5f,%.5f → %.5f,%.5f",
				len(points), first.Lat, first.Lon, last.Lat, last.Lon)))
			all = append(all, points...)
		}
	}

	if box, ok := otp.Bounds(all); ok {
		fmt.Fprintf(&b, "\nBounds: %.5f,%.5f – %.5f,%.5f\n", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	}
	return b.String()
}
