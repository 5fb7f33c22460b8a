// Package api is a thin HTTP client for the QDrive server API.
//
// The session cookie set by login is kept in a cookie jar and sent on every
// subsequent request, so callers only need to log in once per Client. The
// server marks the cookie Secure outside development, in which case the jar
// only returns it over https.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
)

// ErrUnavailable reports that the server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

// Is maps HTTP status codes onto the shared error sentinels.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == common.ErrValidation
	case http.StatusUnauthorized:
		return target == common.ErrorUnauthorized
	case http.StatusForbidden:
		return target == common.ErrForbidden
	case http.StatusConflict:
		return target == common.ErrConflict
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	}
	return target == common.ErrorInternal && e.Status >= http.StatusInternalServerError
}

type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a Client for the server at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

// LoggedIn reports whether the jar holds a session cookie for the server.
func (c *Client) LoggedIn() bool {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == common.AuthCookieName && ck.Value != "" {
			return true
		}
	}
	return false
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
