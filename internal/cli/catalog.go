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
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

var setKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the API key for later commands",
	Long: `set-key stores the API key in ~/.config/cmap/api_key.csv, or in the OS
keychain with --keyring. Later commands use it when no key is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := keyStore()
		if err != nil {
			return err
		}
		if err := store.SaveAPIKey(args[0]); err != nil {
			return err
		}
		pterm.Success.Println("API key stored")
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <statement>",
	Short: "Run a raw statement",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.Query(cmd.Context(), args[0])
	}),
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every variable in the catalog",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.Catalog(cmd.Context())
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search <keywords>",
	Short: "Search the catalog by space separated keywords",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.SearchCatalog(cmd.Context(), args[0])
	}),
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.Datasets(cmd.Context())
	}),
}

var headRows int

var headCmd = &cobra.Command{
	Use:   "head <table>",
	Short: "Show the first rows of a table",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.Head(cmd.Context(), args[0], headRows)
	}),
}

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List the columns of a table",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.Columns(cmd.Context(), args[0])
	}),
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <table> [variable]",
	Short: "Show dataset metadata, or variable metadata with references",
	Args:  cobra.RangeArgs(1, 2),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		if len(args) == 1 {
			return c.DatasetMetadata(cmd.Context(), args[0])
		}
		return c.Metadata(cmd.Context(), args[0], args[1])
	}),
}

var referencesCmd = &cobra.Command{
	Use:   "references <table>",
	Short: "List the references of the dataset stored in a table",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		id, err := c.DatasetID(cmd.Context(), args[0])
		if err != nil {
			return nil, err
		}
		return c.References(cmd.Context(), id)
	}),
}

// varCmd groups the variable accessors.
var varCmd = &cobra.Command{
	Use:   "var",
	Short: "Inspect one variable of a table",
}

func varResult(use, short string, call func(c *cmap.Client, ctx context.Context, table, variable string) (*cmap.ResultSet, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <table> <variable>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
			return call(c, cmd.Context(), args[0], args[1])
		}),
	}
}

func varScalar[T any](use, short string, call func(c *cmap.Client, ctx context.Context, table, variable string) (T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <table> <variable>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			v, err := call(c, cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printScalar(cmd, v)
		},
	}
}

func init() {
	headCmd.Flags().IntVarP(&headRows, "rows", "n", cmap.DefaultHeadRows, "number of rows")

	varCmd.AddCommand(
		varResult("info", "Show the catalog row of a variable", (*cmap.Client).Var),
		varResult("catalog", "Show the one-row catalog of a variable", (*cmap.Client).VarCatalog),
		varResult("resolution", "Show the spatial and temporal resolution", (*cmap.Client).VarResolution),
		varResult("coverage", "Show the spatial and temporal coverage", (*cmap.Client).VarCoverage),
		varResult("stat", "Show summary statistics", (*cmap.Client).VarStat),
		varResult("metadata", "Show metadata without references", (*cmap.Client).MetadataNoRef),
		varScalar("long-name", "Print the descriptive name", (*cmap.Client).VarLongName),
		varScalar("unit", "Print the unit", (*cmap.Client).VarUnit),
		varScalar("has-field", "Report whether the table has the column", (*cmap.Client).HasField),
		varScalar("is-grid", "Report whether the variable is gridded", (*cmap.Client).IsGrid),
	)

	rootCmd.AddCommand(
		setKeyCmd,
		queryCmd,
		catalogCmd,
		searchCmd,
		datasetsCmd,
		headCmd,
		columnsCmd,
		metadataCmd,
		referencesCmd,
		varCmd,
	)
}
