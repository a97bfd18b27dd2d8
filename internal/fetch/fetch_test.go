package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing X-Request-ID header")
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := New(server.Client(), nil)

	resp, err := client.Do(context.Background(), Request{URL: server.URL})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Fatalf("Body = %q", resp.Body)
	}
}

func TestDoPostDefaults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != DefaultContentType {
			t.Errorf("Content-Type = %q, want %q", got, DefaultContentType)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "q=term" {
			t.Errorf("body = %q, want q=term", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.Client(), nil)

	_, err := client.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     server.URL,
		Payload: "q=term",
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
}

func TestDoCustomHeadersAndContentType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.Client(), nil)

	_, err := client.Do(context.Background(), Request{
		Method:      http.MethodPost,
		URL:         server.URL,
		Payload:     `{"q":"term"}`,
		ContentType: "application/json",
		Headers: []Header{
			{Name: "Authorization", Value: "Bearer token"},
			{Name: "  ", Value: "skipped"},
		},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
}

func TestDoNonOKStatusIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.Client(), nil)

	resp, err := client.Do(context.Background(), Request{URL: server.URL})
	if err != nil {
		t.Fatalf("Do() error = %v, want nil for non-2xx", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestDoInvalidURL(t *testing.T) {
	t.Parallel()

	client := New(nil, nil)

	if _, err := client.Do(context.Background(), Request{URL: "://bad"}); err == nil {
		t.Fatalf("Do() expected error for invalid URL")
	}
}

func TestAppendQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		params []Header
		want   string
	}{
		{
			name: "no params",
			url:  "https://example.com/api",
			want: "https://example.com/api",
		},
		{
			name: "appended and escaped",
			url:  "https://example.com/api",
			params: []Header{
				{Name: "q", Value: "a b"},
			},
			want: "https://example.com/api?q=a+b",
		},
		{
			name: "existing query preserved",
			url:  "https://example.com/api?page=1",
			params: []Header{
				{Name: "q", Value: "x"},
			},
			want: "https://example.com/api?page=1&q=x",
		},
		{
			name: "empty names skipped",
			url:  "https://example.com/api",
			params: []Header{
				{Name: " ", Value: "x"},
				{Name: "q", Value: "y"},
			},
			want: "https://example.com/api?q=y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := AppendQuery(tt.url, tt.params)
			if err != nil {
				t.Fatalf("AppendQuery() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("AppendQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
