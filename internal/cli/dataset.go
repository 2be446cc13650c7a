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
	"github.com/spf13/cobra"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

var datasetCount bool

var datasetCmd = &cobra.Command{
	Use:   "dataset <table>",
	Short: "Retrieve an entire dataset",
	Long: `dataset retrieves every row of a table. Tables holding more than
2 million rows are refused; use space-time to retrieve them in chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		if datasetCount {
			rows, err := c.DatasetRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printScalar(cmd, rows)
		}
		rs, err := c.Dataset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, rs)
	},
}

var cruisesCmd = &cobra.Command{
	Use:   "cruises",
	Short: "List cruises",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.Cruises(cmd.Context())
	}),
}

var cruiseCmd = &cobra.Command{
	Use:   "cruise <name>",
	Short: "Show the cruise matching a name or nickname",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.CruiseByName(cmd.Context(), args[0])
	}),
}

var cruiseBoundsCmd = &cobra.Command{
	Use:   "bounds <name>",
	Short: "Show the space-time bounding box of a cruise",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.CruiseBounds(cmd.Context(), args[0])
	}),
}

var cruiseTrajectoryCmd = &cobra.Command{
	Use:   "trajectory <name>",
	Short: "Show the track of a cruise",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.CruiseTrajectory(cmd.Context(), args[0])
	}),
}

var cruiseVariablesCmd = &cobra.Command{
	Use:   "variables <name>",
	Short: "List the variables measured during a cruise",
	Args:  cobra.ExactArgs(1),
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, args []string) (*cmap.ResultSet, error) {
		return c.CruiseVariables(cmd.Context(), args[0])
	}),
}

func init() {
	datasetCmd.Flags().BoolVar(&datasetCount, "count", false, "print the row count instead of the rows")

	cruiseCmd.AddCommand(cruiseBoundsCmd, cruiseTrajectoryCmd, cruiseVariablesCmd)
	rootCmd.AddCommand(datasetCmd, cruisesCmd, cruiseCmd)
}
