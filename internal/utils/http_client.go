package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*resty.Client)

// WithBaseURL sets the base URL. A missing scheme defaults to http://.
func WithBaseURL(address string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetBaseURL(NormalizeBaseURL(address))
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithRetries retries failed requests count times with a fixed wait.
func WithRetries(count int, wait time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetRetryCount(count).SetRetryWaitTime(wait)
	}
}

// NewHTTPClient creates and returns a new HTTPClient instance.
// Each call returns an independent client with its own connection pool.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithBaseURL("localhost:8080"))
//	resp, err := client.R().Get("/api/version/")
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPClient{Client: c}
}

// NormalizeBaseURL prefixes address with http:// when it has no scheme and
// strips trailing slashes.
func NormalizeBaseURL(address string) string {
	address = strings.TrimSpace(address)
	if address != "" && !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return strings.TrimRight(address, "/")
}
