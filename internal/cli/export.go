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

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-sdk/go"
	"github.com/simonscmap/cmap-sdk/go/export"
)

var (
	exportSQLite   string
	exportPostgres string
	exportTable    string
	exportReplace  bool
	exportDataset  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <statement|table>",
	Short: "Load query results into SQLite or Postgres",
	Long: `export runs a statement, or fetches a whole dataset with --dataset, and
writes the rows into a database table, creating it when missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (exportSQLite == "") == (exportPostgres == "") {
			return errors.New("exactly one of --sqlite or --postgres is required")
		}
		ctx := cmd.Context()

		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		table := exportTable
		if table == "" && exportDataset {
			table = args[0]
		}
		if table == "" {
			return errors.New("--table is required")
		}

		var rs *cmap.ResultSet
		if exportDataset {
			rs, err = c.Dataset(ctx, args[0])
		} else {
			rs, err = c.Query(ctx, args[0])
		}
		if err != nil {
			return err
		}

		var sink export.Sink
		if exportSQLite != "" {
			db, err := export.OpenSQLite(exportSQLite)
			if err != nil {
				return err
			}
			defer db.Close()
			sink = &export.SQLSink{DB: db, Table: table, Dialect: export.SQLite, Replace: exportReplace}
		} else {
			pool, err := export.ConnectPostgres(ctx, exportPostgres)
			if err != nil {
				return err
			}
			defer pool.Close()
			sink = &export.PostgresSink{Conn: pool, Table: table, Replace: exportReplace}
		}
		if err := sink.Export(ctx, rs); err != nil {
			return err
		}
		pterm.Success.Printfln("exported %d rows into %s", rs.NumRows(), table)
		return nil
	},
}

func init() {
	flags := exportCmd.Flags()
	flags.StringVar(&exportSQLite, "sqlite", "", "SQLite database file")
	flags.StringVar(&exportPostgres, "postgres", "", "Postgres connection string")
	flags.StringVar(&exportTable, "table", "", "destination table (defaults to the dataset table with --dataset)")
	flags.BoolVar(&exportReplace, "replace", false, "drop the destination table first")
	flags.BoolVar(&exportDataset, "dataset", false, "treat the argument as a table and fetch the whole dataset")

	rootCmd.AddCommand(exportCmd)
}
