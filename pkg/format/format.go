package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Style controls how many clock components FormatTime prints.
type Style int

const (
	// StyleAuto prints seconds only when they are non-zero.
	StyleAuto Style = iota
	// StyleShort prints hours and minutes.
	StyleShort
	// StyleMedium always prints seconds.
	StyleMedium
)

// ParseStyle maps "short", "medium" or "" to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StyleAuto, nil
	case "short":
		return StyleShort, nil
	case "medium":
		return StyleMedium, nil
	}
	return StyleAuto, fmt.Errorf("unknown time style %q", s)
}

// FormatDistance renders a distance in meters the way the result list shows it.
func FormatDistance(meters float64) string {
	switch {
	case meters > 100000:
		return fmt.Sprintf("%s km", strconv.FormatFloat(math.Round(meters/1000), 'f', 0, 64))
	case meters > 1000:
		return fmt.Sprintf("%s km", strconv.FormatFloat(meters/1000, 'f', 1, 64))
	default:
		m := math.Round(meters)
		if m == 0 {
			// -0.4 rounds to -0
			m = 0
		}
		return fmt.Sprintf("%s m", strconv.FormatFloat(m, 'f', 0, 64))
	}
}

// layouts without an offset are read in the caller's location
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp reads an ISO-8601 timestamp. Timestamps carrying no offset
// are interpreted in loc.
func ParseTimestamp(ts string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, errors.New("no time zone given")
	}
	ts = strings.TrimSpace(ts)
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t, nil
	}
	// Java style offsets such as +0100
	if t, err := time.Parse("2006-01-02T15:04:05.999999999Z0700", ts); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", ts)
}

// FormatTime parses ts and renders it as a 24-hour clock in loc.
func FormatTime(ts string, loc *time.Location, style Style) (string, error) {
	t, err := ParseTimestamp(ts, loc)
	if err != nil {
		return "", err
	}
	return FormatClock(t, loc, style), nil
}

// FormatClock renders t as a 24-hour clock in loc. A nil loc keeps t's own zone.
func FormatClock(t time.Time, loc *time.Location, style Style) string {
	if loc != nil {
		t = t.In(loc)
	}
	switch style {
	case StyleShort:
		return t.Format("15:04")
	case StyleMedium:
		return t.Format("15:04:05")
	}
	if t.Second() != 0 {
		return t.Format("15:04:05")
	}
	return t.Format("15:04")
}

// FormatDuration renders a trip or leg duration, e.g. "1 h 5 min".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d s", int(d.Round(time.Second).Seconds()))
	}
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%d min", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d min", h, m)
}
