// Package httpx implements the request layer of the mothership client:
// single-shot HTTP round trips with failure classification, and a bounded
// retry policy on top of them.
package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Default timeouts. Connect is short so unreachable hosts fail fast; read
// tolerates slow server-side processing.
const (
	DefaultConnectTimeout = 3050 * time.Millisecond
	DefaultReadTimeout    = 27 * time.Second
)

// ConnError reports a failed round trip where no response was received.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string { return fmt.Sprintf("connection failed: %v", e.Err) }

func (e *ConnError) Unwrap() error { return e.Err }

// StatusError reports a response with status code >= 400. The raw body is
// kept so the caller can decode the server's structured error.
type StatusError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Request describes one HTTP request. Header and Params are owned by the
// caller and built fresh per call.
type Request struct {
	Method string
	URL    string
	Params url.Values
	Header http.Header
	Body   []byte
}

// Response is a successful (2xx/3xx) response with its body fully read.
// Headers are kept: Location carries the ref after a put.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs exactly one network round trip per call. Retries
// happen a layer up.
type Transport struct {
	client *http.Client
	logger *slog.Logger
}

// NewTransport builds a transport with the given timeouts. A nil httpClient
// gets a default one wired with a connect timeout on the dialer and the
// read timeout as the overall request deadline.
func NewTransport(httpClient *http.Client, connectTimeout, readTimeout time.Duration, logger *slog.Logger) *Transport {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	if httpClient == nil {
		dialer := &net.Dialer{Timeout: connectTimeout}
		httpClient = &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext:           dialer.DialContext,
				TLSHandshakeTimeout:   connectTimeout,
				ResponseHeaderTimeout: readTimeout,
			},
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{client: httpClient, logger: logger}
}

// RoundTrip issues the request once. Network failures come back as
// *ConnError, status >= 400 as *StatusError; context cancellation passes
// through undisguised so callers can tell it apart from transport trouble.
func (t *Transport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	target := req.URL
	if len(req.Params) > 0 {
		target += "?" + req.Params.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ConnError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ConnError{Err: err}
	}

	if httpResp.StatusCode >= 400 {
		return nil, &StatusError{
			StatusCode: httpResp.StatusCode,
			Body:       body,
			Header:     httpResp.Header,
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}
