package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const userAgent = "otpctl/1.0 (+https://github.com/opentripplanner/OpenTripPlanner)"

// Observer is notified about every request the client makes.
type Observer interface {
	ObserveRequest(operation string, d time.Duration, err error)
	ObserveRetry(operation string)
}

// Request is a single GraphQL operation.
type Request struct {
	OperationName string `json:"operationName,omitempty"`
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors"`
}

// Client posts GraphQL operations to a single endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *log.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-attempt timeout. It is applied to a copy of the
// HTTP client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxRetries sets the total number of attempts for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.maxRetries = n
		}
	}
}

// WithBackoff sets the base delay between attempts. Attempt n waits n*d.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithObserver registers a metrics hook.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
		backoff:    time.Second,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Do sends req and decodes the "data" member of the response into out.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	start := time.Now()
	err := c.do(ctx, req, out)
	if c.observer != nil {
		c.observer.ObserveRequest(req.OperationName, time.Since(start), err)
	}
	return err
}

func (c *Client) do(ctx context.Context, req Request, out any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return &Error{Kind: KindGraphQL, Message: fmt.Sprintf("failed to encode request: %v", err), Err: err}
	}

	correlationID := uuid.NewString()
	resp, err := c.postWithRetries(ctx, req.OperationName, correlationID, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:          KindNetwork,
			Message:       statusMessage(resp),
			StatusCode:    resp.StatusCode,
			CorrelationID: correlationID,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to read response body: %v", err), CorrelationID: correlationID, Err: err}
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &Error{Kind: KindGraphQL, Message: fmt.Sprintf("failed to decode response JSON: %v", err), CorrelationID: correlationID, Err: err}
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return &Error{Kind: KindGraphQL, Message: strings.Join(msgs, "; "), CorrelationID: correlationID}
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return &Error{Kind: KindGraphQL, Message: "response has no data", CorrelationID: correlationID}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &Error{Kind: KindGraphQL, Message: fmt.Sprintf("failed to decode %s data: %v", req.OperationName, err), CorrelationID: correlationID, Err: err}
	}
	return nil
}

// postWithRetries attempts the POST up to maxRetries times for 502/503/504 and transport errors
func (c *Client) postWithRetries(ctx context.Context, operation, correlationID string, payload []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, &Error{Kind: KindNetwork, Message: fmt.Sprintf("invalid endpoint %q: %v", c.endpoint, err), CorrelationID: correlationID, Err: err}
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("User-Agent", userAgent)
		httpReq.Header.Set("X-Correlation-ID", correlationID)

		resp, err := c.httpClient.Do(httpReq)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode == http.StatusBadGateway ||
			resp.StatusCode == http.StatusServiceUnavailable ||
			resp.StatusCode == http.StatusGatewayTimeout:
			// hand the last transient response back so its status can be reported
			if attempt == c.maxRetries-1 {
				return resp, nil
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if ctx.Err() != nil {
			break
		}
		if attempt == c.maxRetries-1 {
			break
		}

		c.logger.Warn("request failed, retrying", "operation", operation, "attempt", attempt+1, "of", c.maxRetries, "err", lastErr)
		if c.observer != nil {
			c.observer.ObserveRetry(operation)
		}

		select {
		case <-ctx.Done():
		case <-time.After(time.Duration(attempt+1) * c.backoff):
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &Error{Kind: KindNetwork, Message: ctxErr.Error(), CorrelationID: correlationID, Err: errors.Join(ctxErr, lastErr)}
	}
	return nil, &Error{
		Kind:          KindNetwork,
		Message:       fmt.Sprintf("failed after %d attempts: %v", c.maxRetries, lastErr),
		CorrelationID: correlationID,
		Err:           lastErr,
	}
}

// statusMessage describes a non-2xx response, pulling the title out of HTML error pages.
func statusMessage(resp *http.Response) string {
	fallback := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return fallback
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "html") {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return fallback
		}
		title := strings.TrimSpace(doc.Find("title").First().Text())
		if title == "" {
			title = strings.TrimSpace(doc.Find("h1").First().Text())
		}
		if title != "" {
			return title
		}
		return fallback
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return fmt.Sprintf("%s: %s", fallback, text)
}
