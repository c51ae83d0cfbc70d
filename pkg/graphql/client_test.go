package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietClient(endpoint string, opts ...Option) *Client {
	opts = append([]Option{WithBackoff(time.Millisecond), WithLogger(log.New(io.Discard))}, opts...)
	return NewClient(endpoint, opts...)
}

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Correlation-ID") == "" {
			t.Errorf("expected a correlation id header")
		}

		var body struct {
			OperationName string         `json:"operationName"`
			Query         string         `json:"query"`
			Variables     map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
			return
		}
		if body.OperationName != "serverInfo" {
			t.Errorf("expected operationName serverInfo, got %q", body.OperationName)
		}
		if body.Variables["answer"] != float64(42) {
			t.Errorf("expected variable answer=42, got %v", body.Variables["answer"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"serverInfo": {"version": "2.6.0"}}}`))
	}))
	defer server.Close()

	client := quietClient(server.URL)

	var out struct {
		ServerInfo struct {
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	err := client.Do(context.Background(), Request{
		OperationName: "serverInfo",
		Query:         "query serverInfo { serverInfo { version } }",
		Variables:     map[string]any{"answer": 42},
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ServerInfo.Version != "2.6.0" {
		t.Errorf("expected version 2.6.0, got %q", out.ServerInfo.Version)
	}
}

func TestClient_Do_GraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null, "errors": [{"message": "from is required"}, {"message": "to is required"}]}`))
	}))
	defer server.Close()

	err := quietClient(server.URL).Do(context.Background(), Request{Query: "{ trip }"}, nil)
	if !IsKind(err, KindGraphQL) {
		t.Fatalf("expected graphql error, got %v", err)
	}

	var gqlErr *Error
	errors.As(err, &gqlErr)
	if gqlErr.Message != "from is required; to is required" {
		t.Errorf("unexpected message: %q", gqlErr.Message)
	}
	if gqlErr.CorrelationID == "" {
		t.Error("expected correlation id on error")
	}
}

func TestClient_Do_MissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := quietClient(server.URL).Do(context.Background(), Request{Query: "{ trip }"}, nil)
	if !IsKind(err, KindGraphQL) {
		t.Fatalf("expected graphql error for missing data, got %v", err)
	}
}

func TestClient_Do_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	err := quietClient(server.URL).Do(context.Background(), Request{Query: "{ trip }"}, nil)
	if !IsKind(err, KindGraphQL) {
		t.Fatalf("expected graphql error for invalid JSON, got %v", err)
	}
}

func TestClient_Do_HTMLErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<html><head><title>404 Not Found</title></head><body><h1>Nope</h1></body></html>`))
	}))
	defer server.Close()

	err := quietClient(server.URL).Do(context.Background(), Request{Query: "{ trip }"}, nil)
	var gqlErr *Error
	if !errors.As(err, &gqlErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if gqlErr.Kind != KindNetwork {
		t.Errorf("expected network kind, got %s", gqlErr.Kind)
	}
	if gqlErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", gqlErr.StatusCode)
	}
	if gqlErr.Message != "404 Not Found" {
		t.Errorf("expected HTML title as message, got %q", gqlErr.Message)
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := quietClient(url, WithMaxRetries(2)).Do(context.Background(), Request{Query: "{ trip }"}, nil)
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestClient_Do_UnusableEndpoint(t *testing.T) {
	err := quietClient("", WithMaxRetries(1)).Do(context.Background(), Request{Query: "{ trip }"}, nil)
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error for empty endpoint, got %v", err)
	}
}

func TestClient_Retries_Success(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			// Simulate 503 twice
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data": {"ok": true}}`))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	err := quietClient(server.URL, WithObserver(obs)).Do(context.Background(), Request{OperationName: "ping", Query: "{ ok }"}, nil)
	if err != nil {
		t.Fatalf("expected retry to succeed on 3rd attempt, got error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
	if obs.retries != 2 {
		t.Errorf("expected 2 observed retries, got %d", obs.retries)
	}
	if obs.requests != 1 || obs.lastErr != nil {
		t.Errorf("expected one successful observed request, got %d (err %v)", obs.requests, obs.lastErr)
	}
}

func TestClient_Retries_Fail(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := quietClient(server.URL).Do(context.Background(), Request{Query: "{ ok }"}, nil)
	var gqlErr *Error
	if !errors.As(err, &gqlErr) {
		t.Fatalf("expected retries to completely fail, got %v", err)
	}
	if gqlErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502 to be reported, got %d", gqlErr.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestClient_Do_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := quietClient(server.URL).Do(ctx, Request{Query: "{ ok }"}, nil)
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected error to wrap context.Canceled, got %v", err)
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	requests int
	retries  int
	lastErr  error
}

func (o *recordingObserver) ObserveRequest(operation string, d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests++
	o.lastErr = err
}

func (o *recordingObserver) ObserveRetry(operation string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.retries++
}

func TestWithTimeout_LeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}

	for name, opts := range map[string][]Option{
		"timeout last":  {WithHTTPClient(shared), WithTimeout(5 * time.Second)},
		"timeout first": {WithTimeout(5 * time.Second), WithHTTPClient(shared)},
	} {
		t.Run(name, func(t *testing.T) {
			c := NewClient("http://example.org", opts...)
			if c.httpClient.Timeout != 5*time.Second {
				t.Errorf("expected 5s timeout, got %v", c.httpClient.Timeout)
			}
			if shared.Timeout != 0 {
				t.Errorf("shared client was modified: %v", shared.Timeout)
			}
		})
	}
}
