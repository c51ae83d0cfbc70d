package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"otpctl/pkg/format"
	"otpctl/pkg/otp"

	ics "github.com/arran4/golang-ical"
)

// GenerateICS writes one calendar event per leg of pattern to w.
// Legs without a start or end time are skipped.
func GenerateICS(pattern otp.TripPattern, title string, w io.Writer) error {
	if len(pattern.Legs) == 0 {
		return fmt.Errorf("trip pattern has no legs")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	if title != "" {
		cal.SetName(title)
	}

	now := time.Now()
	written := 0
	for i, leg := range pattern.Legs {
		if leg.AimedStartTime.IsZero() || leg.AimedEndTime.IsZero() {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-leg-%d", leg.AimedStartTime.UTC().Format("20060102T150405Z"), i))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(leg.AimedStartTime)
		event.SetEndAt(leg.AimedEndTime)
		event.SetSummary(legSummary(leg))
		event.SetLocation(leg.FromPlace.Name)

		var desc strings.Builder
		fmt.Fprintf(&desc, "From: %s\nTo: %s\nDistance: %s", leg.FromPlace.Name, leg.ToPlace.Name, format.FormatDistance(leg.Distance))
		if leg.Authority != nil && leg.Authority.Name != "" {
			fmt.Fprintf(&desc, "\nOperator: %s", leg.Authority.Name)
		}
		if title != "" {
			fmt.Fprintf(&desc, "\nTrip: %s", title)
		}
		event.SetDescription(desc.String())
		written++
	}

	if written == 0 {
		return fmt.Errorf("trip pattern has no timed legs")
	}

	return cal.SerializeTo(w)
}

func legSummary(leg otp.Leg) string {
	s := format.ModeLabel(leg.Mode)
	if leg.Line != nil {
		code := leg.Line.PublicCode
		if code == "" {
			code = leg.Line.Name
		}
		if code != "" {
			s += " " + code
		}
	}
	return s + " to " + leg.ToPlace.Name
}
