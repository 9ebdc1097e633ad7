// Package upstream fetches raw market data from the public quote and FX
// providers and normalizes it into domain values. It does no caching.
package upstream

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrSourceUnavailable is returned when an upstream cannot be reached or
// answers with a non-2xx status. Callers map it to 503.
var ErrSourceUnavailable = errors.New("source unavailable")

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 8 << 20

const userAgent = "stockaigent/1.0"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=upstream_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns an http.Client with explicit dial, TLS and
// response-header timeouts on top of the overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   20,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// options shared by both provider clients.
type options struct {
	baseURL    string
	httpClient HTTPClient
}

// Option configures a provider client.
type Option func(*options)

// WithBaseURL overrides the provider base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(o *options) {
		if httpClient != nil {
			o.httpClient = httpClient
		}
	}
}

func newOptions(defaultBase string, opts []Option) options {
	o := options{baseURL: defaultBase, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// get performs a GET and returns the status code and (capped) body.
// Transport failures are wrapped in ErrSourceUnavailable.
func get(req *http.Request, c HTTPClient) (int, []byte, error) {
	req.Header.Set("User-Agent", userAgent)

	res, err := c.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: performing request: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("%w: reading body: %v", ErrSourceUnavailable, err)
	}
	return res.StatusCode, body, nil
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }
