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

// Package cmaptest runs a fake CMAP query endpoint for tests.
//
// Unless a canned response is registered, the server echoes the received
// statement back as a one-cell CSV table with the column "query".
package cmaptest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

// APIKey is the key the server accepts unless another is set.
const APIKey = "test-api-key"

// EchoColumn is the column of echoed statements.
const EchoColumn = "query"

// Response is a canned reply.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// CSV returns a 200 response carrying body as CSV.
func CSV(body string) Response {
	return Response{Status: http.StatusOK, ContentType: "text/csv", Body: body}
}

// JSON returns a 200 response carrying body as JSON.
func JSON(body string) Response {
	return Response{Status: http.StatusOK, ContentType: "application/json", Body: body}
}

// Status returns a response with the given status and a JSON message.
func Status(code int, message string) Response {
	body, _ := json.Marshal(gin.H{"message": message})
	return Response{
		Status:      code,
		ContentType: "application/json",
		Body:        string(body),
	}
}

// Request is a request received by the server.
type Request struct {
	Query         string
	Authorization string
	RequestID     string
}

type prefixRoute struct {
	prefix string
	resp   Response
}

// Server is a fake CMAP server.
type Server struct {
	*httptest.Server

	apiKey string

	mu       sync.Mutex
	exact    map[string]Response
	prefixes []prefixRoute
	requests []Request
}

// NewServer starts a server accepting APIKey.
func NewServer() *Server {
	return NewServerWithKey(APIKey)
}

// NewServerWithKey starts a server accepting apiKey.
func NewServerWithKey(apiKey string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		apiKey: apiKey,
		exact:  make(map[string]Response),
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(cmap.QueryRoute, s.handleQuery)
	s.Server = httptest.NewServer(r)
	return s
}

// Config returns a client config pointing at the server.
func (s *Server) Config() *cmap.Config {
	return &cmap.Config{
		APIKey:    s.apiKey,
		KeyPrefix: cmap.DefaultKeyPrefix,
		BaseURL:   s.URL,
	}
}

// Handle registers resp for the statement query.
func (s *Server) Handle(query string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exact[query] = resp
}

// HandlePrefix registers resp for every statement starting with prefix.
// Exact routes win; among prefixes the first registered wins.
func (s *Server) HandlePrefix(prefix string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes = append(s.prefixes, prefixRoute{prefix: prefix, resp: resp})
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Queries returns the statements received so far.
func (s *Server) Queries() []string {
	reqs := s.Requests()
	queries := make([]string, len(reqs))
	for i, r := range reqs {
		queries[i] = r.Query
	}
	return queries
}

func (s *Server) handleQuery(c *gin.Context) {
	query := c.Query(cmap.QueryParam)
	auth := c.GetHeader("Authorization")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Query:         query,
		Authorization: auth,
		RequestID:     c.GetHeader("X-Request-Id"),
	})
	resp, ok := s.route(query)
	s.mu.Unlock()

	if auth != cmap.DefaultKeyPrefix+s.apiKey {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid api key"})
		return
	}
	if !ok {
		resp = CSV(echo(query))
	}
	c.Data(resp.Status, resp.ContentType, []byte(resp.Body))
}

func (s *Server) route(query string) (Response, bool) {
	if resp, ok := s.exact[query]; ok {
		return resp, true
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(query, p.prefix) {
			return p.resp, true
		}
	}
	return Response{}, false
}

func echo(query string) string {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.WriteAll([][]string{{EchoColumn}, {query}})
	return b.String()
}
