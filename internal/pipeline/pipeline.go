// Package pipeline orchestrates a JSON import end to end: fetch,
// validate, parse, navigate, tabulate. It never returns an error to the
// caller; every failure collapses to a one-cell matrix carrying a
// human-readable message, so the host always receives a well-formed
// grid.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jacoelho/jsongrid/internal/document"
	"github.com/jacoelho/jsongrid/internal/fetch"
	"github.com/jacoelho/jsongrid/internal/navigate"
	"github.com/jacoelho/jsongrid/internal/options"
	"github.com/jacoelho/jsongrid/internal/table"
)

var (
	ErrMissingURL = errors.New("missing URL")
	ErrHTTPStatus = errors.New("HTTP error")
)

const (
	// noDataText fills the placeholder cell when navigation or
	// flattening selects nothing. A placeholder is a valid outcome,
	// distinct from the error sentinel.
	noDataText = "No data found"

	// errorPrefix starts the sole cell of an error matrix.
	errorPrefix = "Error: "

	// snippetLimit bounds the response body excerpt embedded in HTTP
	// status error messages.
	snippetLimit = 100
)

// Service runs import requests. The zero client is replaced with a
// default retrieval client.
type Service struct {
	client *fetch.Client
}

// New creates an import service around the given retrieval client.
func New(client *fetch.Client) *Service {
	if client == nil {
		client = fetch.New(nil, nil)
	}
	return &Service{client: client}
}

// ImportJSON retrieves url with GET and tabulates the value selected by
// path. The options string follows the comma-separated grammar of
// internal/options.
func (s *Service) ImportJSON(ctx context.Context, url, path, rawOptions string) table.Matrix {
	return s.Run(ctx, fetch.Request{
		Method: http.MethodGet,
		URL:    url,
	}, path, rawOptions)
}

// ImportJSONPost retrieves url with POST carrying payload, defaulting to
// URL-encoded form content, and tabulates the value selected by path.
func (s *Service) ImportJSONPost(ctx context.Context, url, payload, path, rawOptions string) table.Matrix {
	return s.Run(ctx, fetch.Request{
		Method:  http.MethodPost,
		URL:     url,
		Payload: payload,
	}, path, rawOptions)
}

// Run executes an arbitrary retrieval request and tabulates the result.
// All failure paths are converted to an error matrix; none escape.
func (s *Service) Run(ctx context.Context, req fetch.Request, path, rawOptions string) table.Matrix {
	cfg := options.Parse(rawOptions)

	matrix, err := s.tabulate(ctx, req, path, cfg)
	if err != nil {
		return errorMatrix(err)
	}
	return matrix
}

func (s *Service) tabulate(ctx context.Context, req fetch.Request, path string, cfg options.Config) (table.Matrix, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrMissingURL
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d: %s", ErrHTTPStatus, resp.StatusCode, snippet(resp.Body))
	}

	root, err := document.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	target, err := navigate.Resolve(root, path)
	if err != nil {
		// A path that selects nothing is a valid empty result.
		if !navigate.IsNotFound(err) {
			return nil, err
		}
		target = nil
	}

	matrix := table.Build(target, cfg)
	if matrix.IsEmpty() {
		return table.SingleCell(noDataText), nil
	}
	return matrix, nil
}

func errorMatrix(err error) table.Matrix {
	return table.SingleCell(errorPrefix + err.Error())
}

// snippet truncates body to roughly snippetLimit characters without
// splitting a multi-byte rune.
func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= snippetLimit {
		return text
	}

	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
