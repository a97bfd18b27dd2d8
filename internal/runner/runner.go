// Package runner executes the configured import targets and writes the
// resulting matrices to stdout.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/jsongrid/internal/config"
	"github.com/jacoelho/jsongrid/internal/exit"
	"github.com/jacoelho/jsongrid/internal/fetch"
	"github.com/jacoelho/jsongrid/internal/output"
	"github.com/jacoelho/jsongrid/internal/pipeline"
	"github.com/jacoelho/jsongrid/internal/ratelimit"
	"github.com/jacoelho/jsongrid/internal/request"
)

// Runner drives imports for every configured target in order. One
// invocation is sequential; the rate limiter paces the batch.
type Runner struct {
	config  *config.Config
	service *pipeline.Service
	format  output.Format
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a runner from a parsed configuration.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, config.Usage())
	}

	httpClient, err := cfg.HTTPClient()
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	client := fetch.New(httpClient, ratelimit.New(cfg.RateLimit))

	return &Runner{
		config:  cfg,
		service: pipeline.New(client),
		format:  format,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

// Run executes all targets and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	for _, target := range r.config.Targets {
		specs, err := r.specsFor(target)
		if err != nil {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return 1
		}

		for _, spec := range specs {
			if err := r.runSpec(ctx, spec); err != nil {
				fmt.Fprintf(r.stderr, "Error: %v\n", err)
				return 1
			}
		}

		if err := ctx.Err(); err != nil {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}

// specsFor expands a target into import specs: YAML files may describe
// several requests, a URL is exactly one shaped by the flags.
func (r *Runner) specsFor(target string) ([]request.Spec, error) {
	if !isRequestFile(target) {
		return []request.Spec{{
			Method:      r.config.Method,
			URL:         target,
			Payload:     r.config.Payload,
			ContentType: r.config.ContentType,
			Headers:     keyValuesFor(r.config.Headers),
			Path:        r.config.Path,
			Options:     r.config.Options,
		}}, nil
	}

	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open request file: %w", err)
	}
	defer f.Close()

	specs, err := request.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	return specs, nil
}

func (r *Runner) runSpec(ctx context.Context, spec request.Spec) error {
	req, err := spec.FetchRequest()
	if err != nil {
		return err
	}

	r.logf("%s %s\n", req.Method, req.URL)

	matrix := r.service.Run(ctx, req, spec.Path, spec.Options)

	r.logf("matrix: %d row(s)\n", len(matrix))

	return output.Write(r.stdout, r.format, matrix)
}

// logf writes debug output to stderr when enabled.
func (r *Runner) logf(format string, args ...any) {
	if r.config == nil || !r.config.Debug {
		return
	}
	fmt.Fprintf(r.stderr, format, args...)
}

func isRequestFile(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

func keyValuesFor(headers []fetch.Header) request.KeyValues {
	if len(headers) == 0 {
		return nil
	}
	out := make(request.KeyValues, 0, len(headers))
	for _, header := range headers {
		out = append(out, request.KeyValue{Name: header.Name, Value: header.Value})
	}
	return out
}
