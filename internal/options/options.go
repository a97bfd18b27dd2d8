// Package options parses the comma-separated option string accepted by
// import calls.
package options

import "strings"

// Config controls header emission for built tables.
type Config struct {
	// SuppressHeaders omits the header row entirely.
	SuppressHeaders bool
	// RawHeaders emits flattened keys as-is instead of display labels.
	RawHeaders bool
}

// Parse splits raw on commas and trims each token. Recognized tokens are
// "noHeaders" and "rawHeaders"; anything else is silently ignored so old
// callers keep working when new tokens appear. Parsing never fails.
func Parse(raw string) Config {
	var cfg Config
	for token := range strings.SplitSeq(raw, ",") {
		switch strings.TrimSpace(token) {
		case "noHeaders":
			cfg.SuppressHeaders = true
		case "rawHeaders":
			cfg.RawHeaders = true
		}
	}
	return cfg
}
