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

// Package cli implements the cmap command-line tool.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	envAPIKey   = "CMAP_API_KEY"
	envBaseURL  = "CMAP_BASE_URL"
	envLogLevel = "CMAP_LOG_LEVEL"
)

var (
	apiKey     string
	baseURL    string
	format     string
	output     string
	logLevel   string
	useKeyring bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cmap",
	Short: "Query the Simons CMAP ocean data service",
	Long: `cmap queries the Simons Collaborative Marine Atlas Project (CMAP).

The API key is taken from --api-key, then from the CMAP_API_KEY environment
variable (a .env file in the working directory is read first), then from the
key store written by 'cmap set-key'.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnv,
}

// Execute runs the CLI application and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiKey, "api-key", "", "CMAP API key (env "+envAPIKey+")")
	flags.StringVar(&baseURL, "base-url", "", "CMAP server URL (env "+envBaseURL+")")
	flags.StringVarP(&format, "format", "f", "table", "output format: table, csv, json or arrow")
	flags.StringVarP(&output, "output", "o", "", "write results to a file instead of stdout")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (env "+envLogLevel+")")
	flags.BoolVar(&useKeyring, "keyring", false, "keep the API key in the OS keychain instead of a file")
}

// loadEnv fills unset flags from the environment, after loading .env.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	flags := cmd.Flags()
	for name, env := range map[string]string{
		"api-key":   envAPIKey,
		"base-url":  envBaseURL,
		"log-level": envLogLevel,
	} {
		if flags.Changed(name) {
			continue
		}
		if v, ok := os.LookupEnv(env); ok {
			if err := flags.Set(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}
