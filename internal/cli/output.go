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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-sdk/go"
	"github.com/simonscmap/cmap-sdk/go/export"
)

// writeResult writes rs in the selected format to stdout or --output.
func writeResult(cmd *cobra.Command, rs *cmap.ResultSet) (err error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		file, createErr := os.Create(output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			err = errors.Join(err, file.Close())
		}()
		w = file
	}

	sink, err := export.NewWriterSink(f, w)
	if err != nil {
		return err
	}
	return sink.Export(cmd.Context(), rs)
}

func printScalar(cmd *cobra.Command, v any) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
	return err
}

// runResult wraps an accessor returning a result set into a RunE.
func runResult(call func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		rs, err := call(cmd, c, args)
		if err != nil {
			return err
		}
		return writeResult(cmd, rs)
	}
}
