package otp

import (
	"context"
	"os"
	"testing"
	"time"

	"otpctl/pkg/endpoint"
	"otpctl/pkg/graphql"
)

// liveAPI talks to the server named by OTP_API_URL. The tests are skipped when
// it is unset or not an absolute URL.
func liveAPI(t *testing.T) *API {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	base := os.Getenv("OTP_API_URL")
	if !endpoint.IsAbsolute(base) {
		t.Skip("Skipping integration test: OTP_API_URL is not an absolute URL")
	}
	return NewAPI(graphql.NewClient(endpoint.GraphQLURL(base)))
}

func TestIntegration_ServerInfo(t *testing.T) {
	api := liveAPI(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	info, err := api.ServerInfo(ctx)
	if err != nil {
		t.Fatalf("Failed to fetch server info: %v", err)
	}
	if info.Version == "" {
		t.Errorf("Server info missing version: %+v", info)
	}
	if info.InternalTransitModelTimeZone != "" {
		if _, err := time.LoadLocation(info.InternalTransitModelTimeZone); err != nil {
			t.Errorf("Server reported unknown time zone %q", info.InternalTransitModelTimeZone)
		}
	}
}

func TestIntegration_Trip(t *testing.T) {
	api := liveAPI(t)

	from, to := os.Getenv("OTP_TEST_FROM"), os.Getenv("OTP_TEST_TO")
	if from == "" || to == "" {
		t.Skip("Skipping integration test: OTP_TEST_FROM and OTP_TEST_TO are not set")
	}
	fromLoc, err := ParseLocation(from)
	if err != nil {
		t.Fatalf("invalid OTP_TEST_FROM: %v", err)
	}
	toLoc, err := ParseLocation(to)
	if err != nil {
		t.Fatalf("invalid OTP_TEST_TO: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := api.Trip(ctx, TripQueryVariables{From: fromLoc, To: toLoc})
	if err != nil {
		t.Fatalf("Failed to fetch trip: %v", err)
	}

	if len(result.TripPatterns) == 0 {
		t.Logf("Got 0 trip patterns. This is unusual but possible late at night.")
	}
	for _, p := range result.TripPatterns {
		if len(p.Legs) == 0 {
			t.Errorf("Trip pattern has no legs: %+v", p)
		}
		for _, leg := range p.Legs {
			if leg.Mode == "" {
				t.Errorf("Leg missing mode: %+v", leg)
			}
			if _, err := leg.Coordinates(); err != nil {
				t.Errorf("Leg geometry does not decode: %v", err)
			}
		}
	}
}
