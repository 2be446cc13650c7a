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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

var (
	// ErrMissingCredentials is returned by NewClient when the API key, key
	// prefix or base URL is empty.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("network error")
	// ErrUnauthorized matches every *AuthError.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMalformedResponse matches every *ParseError.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidName matches every *InvalidNameError.
	ErrInvalidName = errors.New("invalid name")
	// ErrAmbiguousName matches every *AmbiguousNameError.
	ErrAmbiguousName = errors.New("ambiguous name")
	// ErrInvalidInterval matches every *InvalidIntervalError.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrClimatologyBinning is returned when custom time binning is requested
	// on a climatology dataset.
	ErrClimatologyBinning = errors.New("custom binning (monthly, weekly, ...) is not supported for climatological datasets")
	// ErrDatasetTooLarge matches every *DatasetTooLargeError.
	ErrDatasetTooLarge = errors.New("dataset too large")
	// ErrMisalignedTargets is returned when the target and tolerance arrays of a
	// match request do not line up.
	ErrMisalignedTargets = errors.New("misaligned match targets")
)

// Error represents an error response from the CMAP server.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// NetworkReason classifies a transport failure.
type NetworkReason string

const (
	NetworkReasonTimeout NetworkReason = "timeout"
	NetworkReasonDNS     NetworkReason = "dns"
	NetworkReasonRefused NetworkReason = "connection refused"
	NetworkReasonTLS     NetworkReason = "tls"
	NetworkReasonOther   NetworkReason = "other"
)

// NetworkError is returned when the request never produced an HTTP response.
type NetworkError struct {
	Reason NetworkReason
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error (%s): %v", e.Reason, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Timeout reports whether the failure was a timeout.
func (e *NetworkError) Timeout() bool { return e.Reason == NetworkReasonTimeout }

func newNetworkError(err error) *NetworkError {
	return &NetworkError{Reason: classifyNetworkError(err), Err: err}
}

func classifyNetworkError(err error) NetworkReason {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetworkReasonTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetworkReasonDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return NetworkReasonRefused
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return NetworkReasonTimeout
	case strings.Contains(msg, "connection refused"):
		return NetworkReasonRefused
	case strings.Contains(msg, "tls"), strings.Contains(msg, "certificate"), strings.Contains(msg, "handshake"):
		return NetworkReasonTLS
	}
	return NetworkReasonOther
}

// AuthError is returned when the server rejects the API key.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unauthorized (%d): check your API key", e.StatusCode)
	}
	return fmt.Sprintf("unauthorized (%d): %s", e.StatusCode, e.Message)
}

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

// ParseError is returned when a response body cannot be read as a table.
type ParseError struct {
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.ContentType, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformedResponse }

// InvalidNameError is returned when a name lookup matches nothing.
type InvalidNameError struct {
	// Kind is the kind of entity looked up, e.g. "table" or "cruise".
	Kind string
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %s name: %s", e.Kind, e.Name)
}

func (e *InvalidNameError) Is(target error) bool { return target == ErrInvalidName }

// AmbiguousNameError is returned when a name lookup matches more than one row.
type AmbiguousNameError struct {
	Kind string
	Name string
	// Matches holds the conflicting rows.
	Matches *ResultSet
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("more than one %s matches %q (%d rows); please provide a more specific %s name",
		e.Kind, e.Name, e.Matches.NumRows(), e.Kind)
}

func (e *AmbiguousNameError) Is(target error) bool { return target == ErrAmbiguousName }

// InvalidIntervalError is returned for an unrecognized time binning token.
type InvalidIntervalError struct {
	Interval string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: %q", e.Interval)
}

func (e *InvalidIntervalError) Is(target error) bool { return target == ErrInvalidInterval }

// DatasetTooLargeError is returned by Dataset when the table holds more rows
// than MaxDatasetRows.
type DatasetTooLargeError struct {
	Table string
	Rows  int64
	Limit int64
}

func (e *DatasetTooLargeError) Error() string {
	return fmt.Sprintf("%s has %d rows, more than the %d row limit; use SpaceTime to retrieve a subset of the dataset",
		e.Table, e.Rows, e.Limit)
}

func (e *DatasetTooLargeError) Is(target error) bool { return target == ErrDatasetTooLarge }

func checkStatusCodeOK(resp *http.Response) error {
	return checkStatusCode(resp, http.StatusOK)
}

func checkStatusCode(resp *http.Response, expected int) error {
	if resp.StatusCode == expected {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(data))
	if err == nil {
		var errResp Error
		if json.Unmarshal(data, &errResp) == nil && errResp.Message != "" {
			msg = errResp.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Message: msg}
	default:
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}
}

// sneakyBodyClose closes the body and ignores the error.
// This is useful to close the HTTP response body when we don't care about the error.
func sneakyBodyClose(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
