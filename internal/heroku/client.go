package heroku

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Platform API origin.
const DefaultBaseURL = "https://api.heroku.com"

// acceptHeader pins the Platform API version.
const acceptHeader = "application/vnd.heroku+json; version=3"

// Client is a minimal Platform API client: bearer-token auth, JSON
// request/response, no caching of any resource.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a Platform API client for the given token.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// App returns a handle on the named application.
func (c *Client) App(name string, dryRun bool) *App {
	return &App{client: c, Name: name, DryRun: dryRun}
}

// APIError reports a non-2xx Platform API response.
type APIError struct {
	Status  int
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("heroku API error (%d %s): %s", e.Status, e.ID, e.Message)
	}
	return fmt.Sprintf("heroku API error: status %d", e.Status)
}

// do issues one request and decodes the JSON response into out (when
// out is non-nil). Non-2xx statuses decode the API's error body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if readErr == nil {
			_ = json.Unmarshal(data, apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
