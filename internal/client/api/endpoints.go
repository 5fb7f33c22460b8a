package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type userEnvelope struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	in := map[string]string{"email": email, "password": password}
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) RequestRide(ctx context.Context, pickup, destination Point) (*Ride, error) {
	in := map[string]Point{"pickup": pickup, "destination": destination}
	var out struct {
		Ride Ride `json:"ride"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/rides/request", in, &out); err != nil {
		return nil, err
	}
	return &out.Ride, nil
}

func (c *Client) GetRide(ctx context.Context, id string) (*Ride, error) {
	var out struct {
		Ride Ride `json:"ride"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/rides/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Ride, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) ProfilePictureUploadURL(ctx context.Context) (*UploadURL, error) {
	var out UploadURL
	if err := c.do(ctx, http.MethodPost, "/api/users/me/profile-picture", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadToPresignedURL PUTs data to a presigned object storage URL. The
// session cookie is not sent since the URL carries its own signature.
func (c *Client) UploadToPresignedURL(ctx context.Context, target string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	hc := &http.Client{Timeout: c.http.Timeout}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed: %s", resp.Status)
	}
	return nil
}
