// Package httpclient builds the tuned HTTP client used for imports.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole import retrieval including body read.
const DefaultTimeout = 30 * time.Second

// New creates an HTTP client for import retrieval. Connection pooling is
// sized for sequential single-host batches.
func New(tlsConfig *tls.Config, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                  http.ProxyFromEnvironment,
		DialContext:            dialer.DialContext,
		TLSClientConfig:        tlsConfig,
		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		ExpectContinueTimeout:  1 * time.Second,
		IdleConnTimeout:        60 * time.Second,
		MaxIdleConns:           20,
		MaxIdleConnsPerHost:    10,
		MaxConnsPerHost:        10,
		MaxResponseHeaderBytes: 1 << 20, // 1 MiB
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
