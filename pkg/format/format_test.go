package format

import (
	"testing"
	"time"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{950, "950 m"},
		{999.6, "1000 m"},
		{1000, "1000 m"},
		{1500, "1.5 km"},
		{1001, "1.0 km"},
		{100000, "100.0 km"},
		{150000, "150 km"},
		{100400, "100 km"},
		{-5, "-5 m"},
		{-0.4, "0 m"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name  string
		ts    string
		style Style
		want  string
	}{
		{"short omits seconds", "2024-01-01T13:30:00Z", StyleShort, "13:30"},
		{"short drops non-zero seconds", "2024-01-01T13:30:45Z", StyleShort, "13:30"},
		{"medium keeps zero seconds", "2024-01-01T13:30:00Z", StyleMedium, "13:30:00"},
		{"auto with seconds", "2024-01-01T13:30:45Z", StyleAuto, "13:30:45"},
		{"auto without seconds", "2024-01-01T13:30:00Z", StyleAuto, "13:30"},
		{"fractional seconds", "2024-01-01T13:30:45.123Z", StyleMedium, "13:30:45"},
		{"numeric offset", "2024-01-01T14:30:00+01:00", StyleShort, "13:30"},
		{"compact offset", "2024-01-01T14:30:00+0100", StyleShort, "13:30"},
		{"no offset", "2024-01-01T13:30", StyleShort, "13:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatTime(tt.ts, time.UTC, tt.style)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTime_ConvertsToLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	got, err := FormatTime("2024-01-01T13:30:00Z", loc, StyleShort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "14:30" {
		t.Errorf("expected 14:30 in Oslo, got %q", got)
	}
}

func TestFormatTime_Errors(t *testing.T) {
	if _, err := FormatTime("not a time", time.UTC, StyleAuto); err == nil {
		t.Error("expected error for garbage input")
	}
	if _, err := FormatTime("2024-01-01T13:30:00Z", nil, StyleAuto); err == nil {
		t.Error("expected error for missing time zone")
	}
}

func TestParseStyle(t *testing.T) {
	if s, _ := ParseStyle("short"); s != StyleShort {
		t.Errorf("expected StyleShort, got %v", s)
	}
	if s, _ := ParseStyle("MEDIUM"); s != StyleMedium {
		t.Errorf("expected StyleMedium, got %v", s)
	}
	if s, _ := ParseStyle(""); s != StyleAuto {
		t.Errorf("expected StyleAuto, got %v", s)
	}
	if _, err := ParseStyle("long"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45 s"},
		{12 * time.Minute, "12 min"},
		{65 * time.Minute, "1 h 5 min"},
		{2 * time.Hour, "2 h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestColorForMode(t *testing.T) {
	for _, mode := range Modes() {
		c := ColorForMode(mode)
		if c == FallbackColor {
			t.Errorf("mode %q fell back to default colour", mode)
		}
		if c[0] != '#' {
			t.Errorf("mode %q colour %q is not a hex colour", mode, c)
		}
	}

	if got := ColorForMode("hovercraft"); got != "#aaa" {
		t.Errorf("expected fallback #aaa, got %q", got)
	}
	if ColorForMode("BUS") != ColorForMode("bus") {
		t.Error("mode lookup should be case-insensitive")
	}
	if len(Modes()) != len(modeColors) {
		t.Errorf("Modes() lists %d modes but %d colours are defined", len(Modes()), len(modeColors))
	}
}

func TestModeLabel(t *testing.T) {
	if got := ModeLabel("TROLLEYBUS"); got != "Trolleybus" {
		t.Errorf("expected Trolleybus, got %q", got)
	}
}
