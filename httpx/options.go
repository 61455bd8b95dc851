package httpx

import (
	"time"
)

// Option is a named func that will help set custom options to the HTTP Client
type Option func(*Client)

// WithTimeout sets a customizable timeout to the http client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithSkipTLSVerification() Option {
	return func(c *Client) {
		c.transport.TLSClientConfig.InsecureSkipVerify = true
	}
}

// WithClientTrace records connection, TLS and request events of every call on the span found in
// the request context, and propagates that span to the server.
func WithClientTrace() Option {
	return func(c *Client) {
		c.clientTrace = true
	}
}

// WithUserAgent sets the User-Agent header of requests that do not carry one.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}
