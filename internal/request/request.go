// Package request decodes YAML request files describing imports to run.
// A request file is a sequence of import specs executed in order.
package request

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsongrid/internal/fetch"
)

// ErrRequestFile indicates a malformed request file.
var ErrRequestFile = errors.New("request file error")

// Spec describes one import request.
type Spec struct {
	Method      string    `yaml:"method,omitempty"`
	URL         string    `yaml:"url"`
	Headers     KeyValues `yaml:"headers,omitempty"`
	Query       KeyValues `yaml:"query,omitempty"`
	Payload     string    `yaml:"payload,omitempty"`
	ContentType string    `yaml:"content_type,omitempty"`
	Path        string    `yaml:"path,omitempty"`
	Options     string    `yaml:"options,omitempty"`
}

// Parse decodes a request file.
func Parse(r io.Reader) ([]Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFile, err)
	}

	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFile, err)
	}

	for i, spec := range specs {
		if spec.URL == "" {
			return nil, fmt.Errorf("%w: request %d missing url", ErrRequestFile, i+1)
		}
	}

	return specs, nil
}

// FetchRequest converts the spec into a retrieval request, appending any
// query parameters to the URL.
func (s Spec) FetchRequest() (fetch.Request, error) {
	url := s.URL
	if len(s.Query) > 0 {
		appended, err := fetch.AppendQuery(url, headersFor(s.Query))
		if err != nil {
			return fetch.Request{}, err
		}
		url = appended
	}

	return fetch.Request{
		Method:      s.Method,
		URL:         url,
		Payload:     s.Payload,
		ContentType: s.ContentType,
		Headers:     headersFor(s.Headers),
	}, nil
}

func headersFor(entries KeyValues) []fetch.Header {
	if len(entries) == 0 {
		return nil
	}
	out := make([]fetch.Header, 0, len(entries))
	for _, entry := range entries {
		out = append(out, fetch.Header{Name: entry.Name, Value: entry.Value})
	}
	return out
}
