// Package config parses command-line arguments for the jsongrid tool.
package config

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jacoelho/jsongrid/internal/exit"
	"github.com/jacoelho/jsongrid/internal/fetch"
	"github.com/jacoelho/jsongrid/internal/httpclient"
)

var (
	ErrNoArguments     = errors.New("no arguments provided")
	ErrNoTargets       = errors.New("no URL or request file specified")
	ErrInvalidHeader   = errors.New("header must be in format name=value")
	ErrEmptyHeaderName = errors.New("header name cannot be empty")
)

// Config is the complete configuration for one jsongrid invocation.
type Config struct {
	// Targets are URLs to import or YAML request files to run.
	Targets []string
	Debug   bool

	// Request shaping for URL targets.
	Method      string
	Payload     string
	ContentType string
	Headers     []fetch.Header
	Path        string
	Options     string

	// HTTP client configuration.
	Insecure       bool
	CACertFile     string
	RequestTimeout time.Duration
	RateLimit      float64 // Requests per second (0 = unlimited)

	// Output format name: table, csv, tsv or json.
	Format string
}

// TLSConfig returns a TLS configuration based on the config settings.
func (c *Config) TLSConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: c.Insecure,
	}

	if c.CACertFile != "" {
		caCertPool, err := x509.SystemCertPool()
		if err != nil {
			caCertPool = x509.NewCertPool()
		}

		caCert, err := os.ReadFile(c.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate file %s: %w", c.CACertFile, err)
		}

		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate from %s", c.CACertFile)
		}

		tlsConfig.RootCAs = caCertPool
	}

	return tlsConfig, nil
}

// HTTPClient creates the retrieval HTTP client for this configuration.
func (c *Config) HTTPClient() (*http.Client, error) {
	tlsConfig, err := c.TLSConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS configuration: %w", err)
	}

	return httpclient.New(tlsConfig, c.RequestTimeout), nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}

	if c.CACertFile != "" {
		if _, err := os.Stat(c.CACertFile); err != nil {
			return fmt.Errorf("CA certificate file %s not found: %w", c.CACertFile, err)
		}
	}

	return nil
}

// headersFlag implements flag.Value for parsing repeated -header flags.
type headersFlag []fetch.Header

func (h *headersFlag) String() string {
	var pairs []string
	for _, header := range *h {
		pairs = append(pairs, header.Name+"="+header.Value)
	}
	return strings.Join(pairs, ",")
}

func (h *headersFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidHeader, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyHeaderName
	}

	*h = append(*h, fetch.Header{Name: name, Value: parts[1]})
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and an exit
// result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Usage and errors are handled by the caller.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		debug       = fs.Bool("debug", false, "Enable debug output showing request and response details")
		method      = fs.String("method", http.MethodGet, "HTTP method for URL targets")
		payload     = fs.String("data", "", "Request payload (implies POST unless -method is set)")
		contentType = fs.String("content-type", "", "Request content type (default for payloads: "+fetch.DefaultContentType+")")
		path        = fs.String("path", "", "Slash-delimited path (or $-prefixed JSONPath) selecting the value to tabulate")
		opts        = fs.String("options", "", "Comma-separated import options (noHeaders, rawHeaders)")
		insecure    = fs.Bool("insecure", false, "Skip TLS certificate verification")
		caCertFile  = fs.String("cacert", "", "Path to CA certificate file for TLS verification")
		timeout     = fs.Duration("timeout", httpclient.DefaultTimeout, "HTTP request timeout")
		rateLimit   = fs.Float64("rate-limit", 0, "Rate limit in requests per second (0 for unlimited)")
		format      = fs.String("format", "table", "Output format: table, csv, tsv or json")
		headers     headersFlag
	)

	fs.Var(&headers, "header", "Header in format name=value (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoTargets, Usage())
	}

	requestMethod := *method
	if *payload != "" && requestMethod == http.MethodGet {
		requestMethod = http.MethodPost
	}

	config := &Config{
		Targets:        targets,
		Debug:          *debug,
		Method:         requestMethod,
		Payload:        *payload,
		ContentType:    *contentType,
		Headers:        headers,
		Path:           *path,
		Options:        *opts,
		Insecure:       *insecure,
		CACertFile:     *caCertFile,
		RequestTimeout: *timeout,
		RateLimit:      *rateLimit,
		Format:         *format,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsongrid - import JSON from HTTP endpoints as tabular data

Usage: jsongrid [options] <url-or-request-file> ...

Options:
  --method METHOD         HTTP method for URL targets (default: GET)
  --data PAYLOAD          Request payload (implies POST unless -method is set)
  --content-type TYPE     Request content type (payload default: application/x-www-form-urlencoded)
  --header NAME=VALUE     Header in format name=value (can be used multiple times)
  --path PATH             Slash-delimited path (or $-prefixed JSONPath) into the document
  --options LIST          Comma-separated import options: noHeaders, rawHeaders
  --format FORMAT         Output format: table, csv, tsv or json (default: table)
  --timeout DURATION      HTTP request timeout (default: 30s)
  --rate-limit N          Rate limit in requests per second (0 for unlimited)
  --insecure              Skip TLS certificate verification
  --cacert FILE           Path to CA certificate file for TLS verification
  --debug                 Enable debug output showing request and response details
  -h, --help              Show this help message

Examples:
  jsongrid https://api.example.com/items
  jsongrid --path /data/items https://api.example.com/report
  jsongrid --path /data/items --options noHeaders --format csv https://api.example.com/report
  jsongrid --data 'q=term' https://api.example.com/search
  jsongrid imports.yaml                  # Run every request described in the file`
}
