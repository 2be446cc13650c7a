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

import "github.com/pterm/pterm"

const (
	// DefaultBaseURL is the address of the public CMAP service.
	DefaultBaseURL = "https://simonscmap.com"
	// DefaultKeyPrefix precedes the API key in the Authorization header.
	DefaultKeyPrefix = "Api-Key "
)

// Config defines the configuration for the client.
type Config struct {
	// APIKey is the CMAP API key.
	//
	// If empty and KeyStore is set, the key is loaded from the KeyStore.
	APIKey string `json:"api_key"`
	// KeyPrefix is prepended to the API key in the Authorization header.
	KeyPrefix string `json:"key_prefix"`
	// BaseURL is the URL of the CMAP server.
	BaseURL string `json:"base_url"`

	// KeyStore is consulted when APIKey is empty. Optional.
	KeyStore KeyStore `json:"-"`
	// HTTP overrides the HTTP client. Optional.
	HTTP HTTPClient `json:"-"`
	// Logger receives request failures and lookup diagnostics. Optional;
	// defaults to a warn-level logger on stderr.
	Logger *pterm.Logger `json:"-"`
}

// NewConfig returns a Config for the public CMAP service with the given API key.
func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:    apiKey,
		KeyPrefix: DefaultKeyPrefix,
		BaseURL:   DefaultBaseURL,
	}
}
