package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"otpctl/pkg/graphql"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveRequest(t *testing.T) {
	c := NewCollector()

	c.ObserveRequest("trip", 120*time.Millisecond, nil)
	c.ObserveRequest("trip", time.Second, &graphql.Error{Kind: graphql.KindNetwork, Message: "down"})
	c.ObserveRequest("trip", time.Second, errors.New("plain"))
	c.ObserveRetry("trip")
	c.ObserveCacheHit()
	c.ObserveStaleResponse()

	if got := testutil.ToFloat64(c.Requests.WithLabelValues("trip", "ok")); got != 1 {
		t.Errorf("expected 1 ok request, got %v", got)
	}
	if got := testutil.ToFloat64(c.Requests.WithLabelValues("trip", "network")); got != 1 {
		t.Errorf("expected 1 network failure, got %v", got)
	}
	if got := testutil.ToFloat64(c.Requests.WithLabelValues("trip", "other")); got != 1 {
		t.Errorf("expected 1 other failure, got %v", got)
	}
	if got := testutil.ToFloat64(c.Retries.WithLabelValues("trip")); got != 1 {
		t.Errorf("expected 1 retry, got %v", got)
	}
	if got := testutil.ToFloat64(c.CacheHits); got != 1 {
		t.Errorf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(c.StaleResponses); got != 1 {
		t.Errorf("expected 1 stale response, got %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveRequest("serverInfo", time.Millisecond, nil)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `otpctl_graphql_requests_total{operation="serverInfo",outcome="ok"} 1`) {
		t.Errorf("expected request counter in output, got:\n%s", body)
	}
}
