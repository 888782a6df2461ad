// Package fetch retrieves source documents over HTTP.
package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/parnurzeal/gorequest"
)

const (
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent mimics a desktop browser; several feed hosts reject
	// unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Kind distinguishes the ways a fetch can fail.
type Kind int

const (
	KindNetwork Kind = iota + 1 // DNS, connect, TLS or timeout failure
	KindStatus                  // server answered with a non-200 status
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Error is returned for every failed fetch.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int   // set for KindStatus
	Err        error // set for KindNetwork
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("Failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("A network connection error occurred: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// Client is a Fetcher making a single GET per call, without retries.
type Client struct {
	timeout   time.Duration
	userAgent string
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a Client with the default timeout and user agent.
func New(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the response body on HTTP 200. Any other outcome is
// reported as an *Error.
func (c *Client) Fetch(url string) ([]byte, error) {
	resp, body, errs := gorequest.New().
		Get(url).
		Set("User-Agent", c.userAgent).
		Timeout(c.timeout).
		EndBytes()
	if len(errs) > 0 {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: errs[0]}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindStatus, URL: url, StatusCode: resp.StatusCode}
	}
	return body, nil
}
