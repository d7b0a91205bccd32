// Package client calls a running itemstore server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aretw0/itemstore/pkg/core"
)

// DefaultBaseURL is the address served by default.
const DefaultBaseURL = "http://127.0.0.1:8080"

// maxResponseBytes caps how much of a response is read.
const maxResponseBytes = 8 << 20

// Client is an HTTP client for the item endpoints.
type Client struct {
	Base string
	HTTP *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTP = hc
		}
	}
}

// New returns a client for the server at base. An empty base means
// DefaultBaseURL.
func New(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create stores item and returns the server message.
func (c *Client) Create(ctx context.Context, item core.Item) (string, error) {
	return c.send(ctx, http.MethodPost, "/create", item)
}

// List returns every stored item.
func (c *Client) List(ctx context.Context) ([]core.Item, error) {
	body, err := c.do(ctx, http.MethodGet, "/get", nil)
	if err != nil {
		return nil, err
	}
	var items []core.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// Update sets the description of the items named item.Name.
func (c *Client) Update(ctx context.Context, item core.Item) (string, error) {
	return c.send(ctx, http.MethodPut, "/update", item)
}

// Delete removes the items named name.
func (c *Client) Delete(ctx context.Context, name string) (string, error) {
	return c.send(ctx, http.MethodDelete, "/delete", core.DeleteRequest{Name: name})
}

func (c *Client) send(ctx context.Context, method, path string, in any) (string, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return "", err
	}
	body, err := c.do(ctx, method, path, buf)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, nil
}
