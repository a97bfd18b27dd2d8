// Package fetch is the retrieval boundary: it performs one HTTP call and
// reports the raw status code and body. A non-2xx status is a result,
// never an error; errors mean the call itself could not complete.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jacoelho/jsongrid/internal/httpclient"
	"github.com/jacoelho/jsongrid/internal/ratelimit"
)

// DefaultContentType is applied to requests carrying a payload without
// an explicit content type.
const DefaultContentType = "application/x-www-form-urlencoded"

// Header is one request header entry.
type Header struct {
	Name  string
	Value string
}

// Request describes one retrieval call.
type Request struct {
	Method      string
	URL         string
	Payload     string
	ContentType string
	Headers     []Header
}

// Response is the raw retrieval outcome.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client executes retrieval requests, rate-limited across a batch. Each
// outgoing request is tagged with an X-Request-ID for correlation.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// New creates a retrieval client. A nil httpClient gets the default
// tuned client; a nil limiter disables throttling.
func New(client *http.Client, limiter *ratelimit.Limiter) *Client {
	if client == nil {
		client = httpclient.New(nil, httpclient.DefaultTimeout)
	}
	if limiter == nil {
		limiter = ratelimit.New(0)
	}
	return &Client{
		httpClient: client,
		limiter:    limiter,
	}
}

// Do performs the retrieval and reads the full body. The HTTP status is
// reported as-is: callers decide what a non-200 means.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiting interrupted: %w", err)
	}

	httpReq, err := buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Payload != "" {
		body = strings.NewReader(req.Payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.Payload != "" {
		contentType := req.ContentType
		if contentType == "" {
			contentType = DefaultContentType
		}
		httpReq.Header.Set("Content-Type", contentType)
	}

	for _, header := range req.Headers {
		name := strings.TrimSpace(header.Name)
		if name == "" {
			continue
		}
		httpReq.Header.Add(name, header.Value)
	}

	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	return httpReq, nil
}
