/*
 * Copyright 2026 The CMAP SDK Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// HTTPClient is the interface for HTTP client.
type HTTPClient interface {
	// Get sends a GET request to the CMAP server.
	Get(context.Context, *url.URL, http.Header) (*http.Response, error)
	// Close releases idle connections.
	Close()
}

type httpClient struct {
	client *http.Client
}

// NewHTTPClient creates a new internal HTTP client.
func NewHTTPClient() HTTPClient {
	return &httpClient{
		client: &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
	}
}

// Ensure httpClient implements HTTPClient.
var _ HTTPClient = (*httpClient)(nil)

func (c *httpClient) Get(ctx context.Context, u *url.URL, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.client.Do(req)
}

func (c *httpClient) Close() {
	c.client.CloseIdleConnections()
}

// Client is a CMAP client bound to one set of credentials.
//
// A Client is safe for concurrent use; it holds no mutable state.
type Client struct {
	apiKey    string
	keyPrefix string
	baseURL   string

	http   HTTPClient
	logger *pterm.Logger
}

// NewClient validates the config and creates a new client.
//
// The API key, key prefix and base URL must all be non-empty. When the API
// key is empty and a KeyStore is configured, the key is loaded from it.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil config", ErrMissingCredentials)
	}

	apiKey := config.APIKey
	if apiKey == "" && config.KeyStore != nil {
		key, err := config.KeyStore.LoadAPIKey()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingCredentials, err)
		}
		apiKey = key
	}

	switch {
	case strings.TrimSpace(apiKey) == "":
		return nil, fmt.Errorf("%w: api key is empty", ErrMissingCredentials)
	case config.KeyPrefix == "":
		return nil, fmt.Errorf("%w: key prefix is empty", ErrMissingCredentials)
	case config.BaseURL == "":
		return nil, fmt.Errorf("%w: base url is empty", ErrMissingCredentials)
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		apiKey:    apiKey,
		keyPrefix: config.KeyPrefix,
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		http:      config.HTTP,
		logger:    config.Logger,
	}
	if c.http == nil {
		c.http = NewHTTPClient()
	}
	if c.logger == nil {
		c.logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelWarn).WithWriter(os.Stderr)
	}
	return c, nil
}

// BaseURL returns the address of the CMAP server this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the resources held by the client.
//
// You don't typically need to call this as the garbage collector will release
// the resources when the client is no longer referenced.
func (c *Client) Close() {
	c.http.Close()
}
