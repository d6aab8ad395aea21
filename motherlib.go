package motherlib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/timaa2k/motherlib/internal/httpx"
)

const (
	latestEndpoint  = "/latest/"
	historyEndpoint = "/history/"
	blobEndpoint    = "/blob/"
)

// Location markers the server uses for the ref of freshly stored content.
// Which one appears depends on the deployment.
var refMarkers = []string{"/blob/", "/cas/"}

// Client talks to a mothership server. It holds only immutable
// configuration and is safe for concurrent use.
type Client struct {
	addr    string
	token   string
	retrier *httpx.Retrier
	logger  *slog.Logger
}

// New creates a client for the server at addr (e.g. "https://api.mother.ship").
func New(addr string, opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return nil, errors.New("motherlib: server address required")
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := httpx.NewTransport(options.HTTPClient, options.ConnectTimeout, options.ReadTimeout, logger)
	retrier, err := httpx.NewRetrier(transport, options.Retries, 0, logger)
	if err != nil {
		return nil, fmt.Errorf("motherlib: %w", err)
	}

	return &Client{
		addr:    addr,
		token:   options.BearerToken,
		retrier: retrier,
		logger:  logger,
	}, nil
}

// do routes one request through the retry policy and maps terminal
// failures into the client's error taxonomy. Headers are built fresh for
// every call; nothing request-scoped is shared.
func (c *Client) do(ctx context.Context, method, uri, accept string, body []byte) (*httpx.Response, error) {
	header := make(http.Header)
	if accept != "" {
		header.Set("Accept", accept)
	}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.retrier.Do(ctx, httpx.Request{
		Method: method,
		URL:    c.addr + uri,
		Header: header,
		Body:   body,
	})
	if err != nil {
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) {
			return nil, apiError(statusErr.StatusCode, statusErr.Body)
		}
		var connErr *httpx.ConnError
		if errors.As(err, &connErr) {
			return nil, &ConnectionError{Err: connErr.Err}
		}
		return nil, err
	}
	return resp, nil
}

// GetBlob fetches the stored bytes for a ref.
func (c *Client) GetBlob(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, errors.New("motherlib: ref required")
	}
	resp, err := c.do(ctx, http.MethodGet, blobEndpoint+ref, "application/octet-stream", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// PutLatest stores content under the given tag set and returns the
// content-derived ref the server assigned, extracted from the Location
// response header.
func (c *Client) PutLatest(ctx context.Context, tags []string, content io.Reader) (string, error) {
	uri, err := tagURI(latestEndpoint, tags, false)
	if err != nil {
		return "", err
	}
	body, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("motherlib: read content: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPut, uri, "", body)
	if err != nil {
		return "", err
	}
	return refFromLocation(resp.Header.Get("Location"))
}

// GetLatest looks up the latest content for an exact tag-set match. The
// server answers with the stored bytes when the match is unique, or a JSON
// list of candidate records when it is ambiguous; the Result carries
// whichever came back.
func (c *Client) GetLatest(ctx context.Context, tags []string) (*Result, error) {
	return c.getLatest(ctx, tags, false)
}

// GetSupersetLatest is GetLatest with superset matching: records whose tag
// set contains the queried tags match. An empty tag set matches everything.
func (c *Client) GetSupersetLatest(ctx context.Context, tags []string) (*Result, error) {
	return c.getLatest(ctx, tags, true)
}

func (c *Client) getLatest(ctx context.Context, tags []string, superset bool) (*Result, error) {
	uri, err := tagURI(latestEndpoint, tags, superset)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodGet, uri, "application/json", nil)
	if err != nil {
		return nil, err
	}
	return decodeResult(resp.Body)
}

// GetHistory returns all records for an exact tag-set match, newest first.
func (c *Client) GetHistory(ctx context.Context, tags []string) ([]Record, error) {
	return c.getHistory(ctx, tags, false)
}

// GetSupersetHistory is GetHistory with superset matching.
func (c *Client) GetSupersetHistory(ctx context.Context, tags []string) ([]Record, error) {
	return c.getHistory(ctx, tags, true)
}

func (c *Client) getHistory(ctx context.Context, tags []string, superset bool) ([]Record, error) {
	uri, err := tagURI(historyEndpoint, tags, superset)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodGet, uri, "application/json", nil)
	if err != nil {
		return nil, err
	}
	// History is always a record list; a unique match is not special-cased
	// the way latest responses are.
	return decodeRecords(resp.Body)
}

// DeleteHistory removes the content and all its history for an exact
// tag-set match.
func (c *Client) DeleteHistory(ctx context.Context, tags []string) error {
	return c.deleteHistory(ctx, tags, false)
}

// DeleteSupersetHistory is DeleteHistory with superset matching.
func (c *Client) DeleteSupersetHistory(ctx context.Context, tags []string) error {
	return c.deleteHistory(ctx, tags, true)
}

func (c *Client) deleteHistory(ctx context.Context, tags []string, superset bool) error {
	uri, err := tagURI(historyEndpoint, tags, superset)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, uri, "", nil)
	return err
}

// GetLoginInfo starts the OAuth2 flow for a provider. The returned AuthURL
// is for the caller to present; the client does not drive the browser.
func (c *Client) GetLoginInfo(ctx context.Context, provider string) (*AuthInfo, error) {
	if provider == "" {
		return nil, errors.New("motherlib: provider required")
	}
	resp, err := c.do(ctx, http.MethodGet, "/auth/"+provider+"/login", "application/json", nil)
	if err != nil {
		return nil, err
	}
	return decodeAuthInfo(resp.Body)
}

// refFromLocation extracts the ref from a Location header value, taking
// the suffix after the last ref marker.
func refFromLocation(location string) (string, error) {
	best := -1
	width := 0
	for _, marker := range refMarkers {
		if i := strings.LastIndex(location, marker); i > best {
			best = i
			width = len(marker)
		}
	}
	if best < 0 || best+width >= len(location) {
		return "", &DecodeError{Msg: fmt.Sprintf("location header %q", location)}
	}
	return location[best+width:], nil
}
