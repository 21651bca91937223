// Package transport provides the HTTP client used to talk to the upstream
// taxonomy repository, with pluggable authentication. All requests are
// synchronous and bounded by a fixed timeout; no retries are attempted.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/adtaxonomy/taxsync/pkg/constants"
	"github.com/adtaxonomy/taxsync/pkg/errors"
)

// acceptHeader is the GitHub REST API media type. Harmless on raw file
// downloads, required for stable contents-API responses.
const acceptHeader = "application/vnd.github+json"

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		auth: auth,
	}
}

// Default creates a client authenticated from the environment with the
// standard timeout.
func Default() *Client {
	return New(FromEnv(), constants.DefaultHTTPTimeout)
}

// GetText performs a GET request and returns the full response body as
// text. Non-2xx responses and connection failures surface as a
// TransportError.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON performs a GET request and decodes the JSON response body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.WrapTransport(url, 0, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapTransport(url, 0, err)
	}
	req.Header.Set("Accept", acceptHeader)
	c.auth.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapTransport(url, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewTransportError(url, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapTransport(url, resp.StatusCode, err)
	}
	return body, nil
}
