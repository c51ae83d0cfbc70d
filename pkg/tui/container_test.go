package tui

import (
	"context"
	"testing"
	"time"

	"otpctl/pkg/otp"
	"otpctl/pkg/session"
)

type staticInfo struct{ info *otp.ServerInfo }

func (s staticInfo) ServerInfo(context.Context) (*otp.ServerInfo, error) { return s.info, nil }

type staticTrips struct{ result *otp.TripQueryResult }

func (s staticTrips) Trip(context.Context, otp.TripQueryVariables) (*otp.TripQueryResult, error) {
	return s.result, nil
}

func TestContainer_WatchSyncsPresenter(t *testing.T) {
	ctx := context.Background()

	info := session.NewServerInfoLoader(staticInfo{&otp.ServerInfo{InternalTransitModelTimeZone: "UTC"}})
	if _, err := info.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	start := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	trips := session.NewTripQuery(staticTrips{&otp.TripQueryResult{
		TripPatterns: []otp.TripPattern{samplePattern(start)},
	}})

	fallback := time.FixedZone("X", 3600)
	c := NewContainer(info, trips, fallback)
	if c.Presenter().Location() != fallback {
		t.Fatalf("expected fallback zone before sync, got %s", c.Presenter().Location())
	}
	c.Presenter().Select(5, 10)

	stop := c.Watch(ctx)
	defer stop()

	from, _ := otp.ParseLocation("NSR:StopPlace:1")
	to, _ := otp.ParseLocation("NSR:StopPlace:2")
	trips.SetVariables(otp.TripQueryVariables{From: from, To: to})
	if err := trips.Trigger(ctx); err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for c.Presenter().Selected() != 0 || c.Presenter().Location().String() != "UTC" {
		select {
		case <-deadline:
			t.Fatalf("presenter not synced: selected=%d loc=%s", c.Presenter().Selected(), c.Presenter().Location())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestLocationInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NSR:StopPlace:337", "NSR:StopPlace:337"},
		{"Oslo S::NSR:StopPlace:337", "Oslo S::NSR:StopPlace:337"},
		{"59.91,10.75", "59.91,10.75"},
	}
	for _, tt := range tests {
		loc, err := otp.ParseLocation(tt.in)
		if err != nil {
			t.Fatalf("ParseLocation(%q) failed: %v", tt.in, err)
		}
		if got := locationInput(loc); got != tt.want {
			t.Errorf("locationInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
