package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsongrid/internal/fetch"
	"github.com/jacoelho/jsongrid/internal/table"
)

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

const itemsBody = `{"data":{"items":[{"id":1,"name":"x"},{"id":2,"name":"y"}]}}`

func TestImportJSONScenario(t *testing.T) {
	t.Parallel()

	server := jsonServer(t, itemsBody)
	service := New(fetch.New(server.Client(), nil))

	tests := []struct {
		name    string
		path    string
		options string
		want    table.Matrix
	}{
		{
			name: "formatted headers",
			path: "/data/items",
			want: table.Matrix{
				{"Id", "Name"},
				{json.Number("1"), "x"},
				{json.Number("2"), "y"},
			},
		},
		{
			name:    "suppressed headers",
			path:    "/data/items",
			options: "noHeaders",
			want: table.Matrix{
				{json.Number("1"), "x"},
				{json.Number("2"), "y"},
			},
		},
		{
			name:    "raw headers",
			path:    "/data/items",
			options: "rawHeaders",
			want: table.Matrix{
				{"id", "name"},
				{json.Number("1"), "x"},
				{json.Number("2"), "y"},
			},
		},
		{
			name: "whole document",
			path: "",
			want: table.Matrix{
				{"Data Items"},
				{`{"id":1,"name":"x"}, {"id":2,"name":"y"}`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := service.ImportJSON(context.Background(), server.URL, tt.path, tt.options)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ImportJSON() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportJSONNoData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		path string
	}{
		{
			name: "path not found",
			body: itemsBody,
			path: "/nonexistent",
		},
		{
			name: "null document",
			body: `null`,
			path: "",
		},
		{
			name: "empty array",
			body: `[]`,
			path: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := jsonServer(t, tt.body)
			service := New(fetch.New(server.Client(), nil))

			got := service.ImportJSON(context.Background(), server.URL, tt.path, "")
			want := table.Matrix{{"No data found"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("ImportJSON() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func errorCell(t *testing.T, m table.Matrix) string {
	t.Helper()
	if len(m) != 1 || len(m[0]) != 1 {
		t.Fatalf("matrix = %v, want single cell", m)
	}
	cell, ok := m[0][0].(string)
	if !ok {
		t.Fatalf("cell = %v (%T), want string", m[0][0], m[0][0])
	}
	return cell
}

func TestImportJSONMissingURL(t *testing.T) {
	t.Parallel()

	service := New(nil)

	cell := errorCell(t, service.ImportJSON(context.Background(), "  ", "", ""))
	if !strings.Contains(cell, "missing URL") || !strings.HasPrefix(cell, "Error: ") {
		t.Fatalf("cell = %q, want missing URL error", cell)
	}
}

func TestImportJSONHTTPStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "resource missing", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	service := New(fetch.New(server.Client(), nil))

	cell := errorCell(t, service.ImportJSON(context.Background(), server.URL, "", ""))
	switch {
	case !strings.HasPrefix(cell, "Error: "):
		t.Fatalf("cell = %q, want Error prefix", cell)
	case !strings.Contains(cell, "404"):
		t.Fatalf("cell = %q, want status code", cell)
	case !strings.Contains(cell, "resource missing"):
		t.Fatalf("cell = %q, want body snippet", cell)
	}
}

func TestImportJSONStatusSnippetTruncated(t *testing.T) {
	t.Parallel()

	longBody := strings.Repeat("x", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, longBody)
	}))
	t.Cleanup(server.Close)

	service := New(fetch.New(server.Client(), nil))

	cell := errorCell(t, service.ImportJSON(context.Background(), server.URL, "", ""))
	if len(cell) > len("Error: HTTP error 502: ")+snippetLimit+len("...") {
		t.Fatalf("cell length = %d, snippet not truncated: %q", len(cell), cell)
	}
}

func TestImportJSONMalformedBody(t *testing.T) {
	t.Parallel()

	server := jsonServer(t, `{"broken":`)
	service := New(fetch.New(server.Client(), nil))

	cell := errorCell(t, service.ImportJSON(context.Background(), server.URL, "", ""))
	if !strings.Contains(cell, "invalid JSON") {
		t.Fatalf("cell = %q, want invalid JSON error", cell)
	}
}

func TestImportJSONUnreachable(t *testing.T) {
	t.Parallel()

	service := New(nil)

	cell := errorCell(t, service.ImportJSON(context.Background(), "http://127.0.0.1:1/unreachable", "", ""))
	if !strings.HasPrefix(cell, "Error: ") {
		t.Fatalf("cell = %q, want Error prefix", cell)
	}
}

func TestImportJSONPost(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != fetch.DefaultContentType {
			t.Errorf("Content-Type = %q, want %q", got, fetch.DefaultContentType)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "q=term" {
			t.Errorf("body = %q, want q=term", body)
		}
		io.WriteString(w, `[{"id":1}]`)
	}))
	t.Cleanup(server.Close)

	service := New(fetch.New(server.Client(), nil))

	got := service.ImportJSONPost(context.Background(), server.URL, "q=term", "", "")
	want := table.Matrix{
		{"Id"},
		{json.Number("1")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ImportJSONPost() mismatch (-want +got):\n%s", diff)
	}
}
