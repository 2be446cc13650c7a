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
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	// QueryRoute is the path of the query endpoint.
	QueryRoute = "/api/data/query"
	// QueryParam is the URL parameter carrying the statement text.
	QueryParam = "query"

	headerRequestID = "X-Request-Id"
)

// queryAPI defines interfaces under /api/data.
type queryAPI interface {
	// request sends an authenticated GET to route and reads the response as a table.
	request(ctx context.Context, route string, payload url.Values) (*ResultSet, error)
}

var _ queryAPI = (*Client)(nil)

// Query sends a raw statement to the query endpoint.
//
// The text is sent as is. Prefer Execute with a Statement when any part of
// the text comes from user input.
func (c *Client) Query(ctx context.Context, query string) (*ResultSet, error) {
	return c.request(ctx, QueryRoute, url.Values{QueryParam: []string{query}})
}

// Execute renders the statement and sends it to the query endpoint.
func (c *Client) Execute(ctx context.Context, s *Statement) (*ResultSet, error) {
	query, err := s.Render()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("executing statement", c.logger.Args("query", query))
	return c.Query(ctx, query)
}

func (c *Client) request(ctx context.Context, route string, payload url.Values) (*ResultSet, error) {
	u, err := url.Parse(c.baseURL + route)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		u.RawQuery = payload.Encode()
	}

	requestID := uuid.NewString()
	header := http.Header{}
	header.Set("Authorization", c.keyPrefix+c.apiKey)
	header.Set("Content-Type", contentTypeJSON)
	header.Set(headerRequestID, requestID)

	resp, err := c.http.Get(ctx, u, header)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		netErr := newNetworkError(err)
		c.logFailure(route, requestID, netErr)
		return nil, netErr
	}
	defer sneakyBodyClose(resp.Body)
	if err := checkStatusCodeOK(resp); err != nil {
		c.logFailure(route, requestID, err)
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := newNetworkError(err)
		c.logFailure(route, requestID, netErr)
		return nil, netErr
	}
	rs, err := parseResultSet(resp.Header.Get("Content-Type"), data)
	if err != nil {
		c.logFailure(route, requestID, err)
		return nil, err
	}
	rs.RequestID = requestID
	rs.StatusCode = resp.StatusCode
	return rs, nil
}

func (c *Client) logFailure(route, requestID string, err error) {
	c.logger.Error("request failed", c.logger.Args(
		"route", route,
		"request_id", requestID,
		"error", c.maskSecret(err.Error()),
	))
}

// maskSecret replaces the API key in s with asterisks.
func (c *Client) maskSecret(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, "***")
}
