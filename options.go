package motherlib

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/timaa2k/motherlib/internal/httpx"
)

// Options configures a Client.
type Options struct {
	BearerToken    string
	Retries        int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Retries:        httpx.DefaultAttempts,
		ConnectTimeout: httpx.DefaultConnectTimeout,
		ReadTimeout:    httpx.DefaultReadTimeout,
	}
}

// WithBearerToken attaches the token to every request as an Authorization
// header. The credential is client-lifetime configuration, never mutated
// per call.
func WithBearerToken(token string) Option {
	return func(o *Options) { o.BearerToken = token }
}

// WithRetries sets the total attempt budget per request. Must be >= 1;
// 1 means no retry.
func WithRetries(n int) Option {
	return func(o *Options) { o.Retries = n }
}

// WithTimeouts overrides the connect and read timeouts.
func WithTimeouts(connect, read time.Duration) Option {
	return func(o *Options) {
		o.ConnectTimeout = connect
		o.ReadTimeout = read
	}
}

// WithHTTPClient supplies a custom *http.Client. Timeout options are
// ignored when one is set; the caller owns its configuration.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) { o.HTTPClient = client }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
