package carrier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Defaults for remote sources.
const (
	DefaultRemoteTimeout = 10 * time.Second
	DefaultMaxSourceSize = 1 << 20 // 1MB
)

// RemoteOption configures a remote loader.
type RemoteOption func(*remoteOptions)

type remoteOptions struct {
	client  *http.Client
	format  Format
	headers http.Header
	maxSize int64
}

// WithHTTPClient sets the client used to fetch the table.
// Default: a client with a 10 second timeout.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(o *remoteOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithFormat forces the source format instead of inferring it from the
// URL path or the response Content-Type.
func WithFormat(f Format) RemoteOption {
	return func(o *remoteOptions) {
		o.format = f
	}
}

// WithHeader adds a request header, e.g. an Authorization token for a
// private repository.
func WithHeader(key, value string) RemoteOption {
	return func(o *remoteOptions) {
		o.headers.Add(key, value)
	}
}

// WithMaxSize limits the response body size in bytes.
// Default: 1MB.
func WithMaxSize(n int64) RemoteOption {
	return func(o *remoteOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// Remote returns a loader fetching the table over HTTP(S).
// Returns ErrFetchFailed for malformed URLs, network errors and non-200
// responses, and ErrSourceTooLarge when the body exceeds the size limit.
func Remote(sourceURL string, opts ...RemoteOption) Loader {
	o := &remoteOptions{
		client:  &http.Client{Timeout: DefaultRemoteTimeout},
		headers: make(http.Header),
		maxSize: DefaultMaxSourceSize,
	}
	for _, opt := range opts {
		opt(o)
	}

	return LoaderFunc(func(ctx context.Context) ([]Entry, error) {
		return fetch(ctx, sourceURL, o)
	})
}

func fetch(ctx context.Context, sourceURL string, o *remoteOptions) ([]Entry, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: invalid URL %q", ErrFetchFailed, sourceURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	for k, vs := range o.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}
	if resp.ContentLength > o.maxSize {
		return nil, ErrSourceTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, o.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if int64(len(data)) > o.maxSize {
		return nil, ErrSourceTooLarge
	}

	format := o.format
	if format == "" {
		if format, err = FormatFromPath(parsed.Path); err != nil {
			if format, err = FormatFromContentType(resp.Header.Get("Content-Type")); err != nil {
				return nil, err
			}
		}
	}

	return Decode(bytes.NewReader(data), format)
}
