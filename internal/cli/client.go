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

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

func newLogger() (*pterm.Logger, error) {
	level := pterm.LogLevelWarn
	switch strings.ToLower(logLevel) {
	case "":
	case "trace":
		level = pterm.LogLevelTrace
	case "debug":
		level = pterm.LogLevelDebug
	case "info":
		level = pterm.LogLevelInfo
	case "warn", "warning":
		level = pterm.LogLevelWarn
	case "error":
		level = pterm.LogLevelError
	case "off", "disabled":
		level = pterm.LogLevelDisabled
	default:
		return nil, fmt.Errorf("unknown log level %q", logLevel)
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(os.Stderr), nil
}

func keyStore() (cmap.KeyStore, error) {
	if useKeyring {
		return cmap.OpenKeyringKeyStore()
	}
	return cmap.NewFileKeyStore()
}

func newClient() (*cmap.Client, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	config := cmap.NewConfig(apiKey)
	config.Logger = logger
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if apiKey == "" {
		store, err := keyStore()
		if err != nil {
			return nil, err
		}
		config.KeyStore = store
	}
	return cmap.NewClient(config)
}
