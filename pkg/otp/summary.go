package otp

import (
	"sort"
	"strings"
	"time"
)

// PatternSummary is the one-line view of a trip pattern in the result list.
type PatternSummary struct {
	// Index into TripQueryResult.TripPatterns
	Index    int
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Distance float64
	Legs     []LegSummary
}

// LegSummary names the mode and line of one leg.
type LegSummary struct {
	Mode string
	Line string
}

// Label renders the leg as "BUS 31" or just "FOOT".
func (l LegSummary) Label() string {
	if l.Line == "" {
		return strings.ToUpper(l.Mode)
	}
	return strings.ToUpper(l.Mode) + " " + l.Line
}

// Chain renders the legs as "FOOT → BUS 31 → RAIL R10".
func (s PatternSummary) Chain() string {
	labels := make([]string, 0, len(s.Legs))
	for _, l := range s.Legs {
		labels = append(labels, l.Label())
	}
	return strings.Join(labels, " → ")
}

// Summarize sorts the patterns of r by start time and condenses each one.
// Patterns with no start time sort last.
func Summarize(r *TripQueryResult) []PatternSummary {
	if r == nil {
		return nil
	}

	result := make([]PatternSummary, 0, len(r.TripPatterns))
	for i, p := range r.TripPatterns {
		s := PatternSummary{
			Index:    i,
			Start:    p.AimedStartTime,
			End:      p.AimedEndTime,
			Duration: p.TotalDuration(),
			Distance: p.Distance,
		}
		for _, l := range p.Legs {
			ls := LegSummary{Mode: l.Mode}
			if l.Line != nil {
				ls.Line = l.Line.PublicCode
				if ls.Line == "" {
					ls.Line = l.Line.Name
				}
			}
			s.Legs = append(s.Legs, ls)
		}
		if s.Duration == 0 && !s.Start.IsZero() && !s.End.IsZero() {
			s.Duration = s.End.Sub(s.Start)
		}
		result = append(result, s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Start, result[j].Start
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.Before(b)
	})

	return result
}
