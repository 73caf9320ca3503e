// Package contentapi is the storefront's only gateway to the remote
// content/commerce backend: one GraphQL POST endpoint plus a couple of REST
// routes. The backend owns all catalog, order, and comment persistence; this
// package only shapes requests and decodes responses.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	endpoint string
	baseURL  string
	http     *http.Client
	logger   *log.Logger
}

// New builds a Client. endpoint is the GraphQL URL, baseURL the site root
// for REST routes (wp-json).
func New(endpoint, baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// query posts a GraphQL document and unmarshals the data payload into dest.
// A non-empty errors array is treated as a failed call. The token, when set,
// is forwarded as a bearer credential.
func (c *Client) query(ctx context.Context, token, query string, variables map[string]interface{}, dest interface{}) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("content api: unexpected status %d", res.StatusCode)
	}

	var resp gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return fmt.Errorf("content api: decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		c.logger.Printf("content api: graphql errors: %+v", resp.Errors)
		return fmt.Errorf("content api: %s", resp.Errors[0].Message)
	}
	if dest != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, dest); err != nil {
			return fmt.Errorf("content api: decode data: %w", err)
		}
	}
	return nil
}

// getJSON fetches a REST route under the configured base URL.
func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("content api: unexpected status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(dest)
}
