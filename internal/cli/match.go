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
	"github.com/spf13/pflag"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

type targetFlags struct {
	tables    []string
	variables []string
	temporal  []float64
	lat       []float64
	lon       []float64
	depth     []float64
}

func (t *targetFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&t.tables, "target-table", nil, "target table, repeatable")
	flags.StringSliceVar(&t.variables, "target-variable", nil, "target variable, one per target table")
	addToleranceFlags(flags, t)
	_ = cmd.MarkFlagRequired("target-table")
	_ = cmd.MarkFlagRequired("target-variable")
}

func addToleranceFlags(flags *pflag.FlagSet, t *targetFlags) {
	flags.Float64SliceVar(&t.temporal, "temporal-tolerance", []float64{0}, "temporal tolerance in days, one value or one per target")
	flags.Float64SliceVar(&t.lat, "lat-tolerance", []float64{0.25}, "latitude tolerance in degrees")
	flags.Float64SliceVar(&t.lon, "lon-tolerance", []float64{0.25}, "longitude tolerance in degrees")
	flags.Float64SliceVar(&t.depth, "depth-tolerance", []float64{5}, "depth tolerance in meters")
}

func (t *targetFlags) tolerances() cmap.Tolerances {
	return cmap.Tolerances{Temporal: t.temporal, Lat: t.lat, Lon: t.lon, Depth: t.depth}
}

var (
	matchWindow  windowFlags
	matchTargets targetFlags

	alongTrackCruise  string
	alongTrackDepth   [2]float64
	alongTrackTargets targetFlags
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Colocalize a source variable with target variables",
	Long: `match finds, for every source sample inside the window, the target values
within the tolerances. Each target adds its variable as a column.`,
	Args: cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		q := matchWindow.spaceTime()
		return c.Match(cmd.Context(), &cmap.MatchRequest{
			SourceTable:     q.Table,
			SourceVariable:  q.Variable,
			TargetTables:    matchTargets.tables,
			TargetVariables: matchTargets.variables,
			Dt1:             q.Dt1,
			Dt2:             q.Dt2,
			Lat1:            q.Lat1,
			Lat2:            q.Lat2,
			Lon1:            q.Lon1,
			Lon2:            q.Lon2,
			Depth1:          q.Depth1,
			Depth2:          q.Depth2,
			Tolerances:      matchTargets.tolerances(),
		})
	}),
}

var alongTrackCmd = &cobra.Command{
	Use:   "along-track",
	Short: "Colocalize a cruise track with target variables",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.AlongTrack(cmd.Context(), &cmap.AlongTrackRequest{
			Cruise:          alongTrackCruise,
			TargetTables:    alongTrackTargets.tables,
			TargetVariables: alongTrackTargets.variables,
			Depth1:          alongTrackDepth[0],
			Depth2:          alongTrackDepth[1],
			Tolerances:      alongTrackTargets.tolerances(),
		})
	}),
}

func init() {
	matchWindow.bind(matchCmd)
	matchTargets.bind(matchCmd)

	flags := alongTrackCmd.Flags()
	flags.StringVar(&alongTrackCruise, "cruise", "", "cruise name or nickname")
	flags.Float64Var(&alongTrackDepth[0], "depth1", 0, "shallow depth in meters")
	flags.Float64Var(&alongTrackDepth[1], "depth2", 5, "deep depth in meters")
	_ = alongTrackCmd.MarkFlagRequired("cruise")
	alongTrackTargets.bind(alongTrackCmd)

	rootCmd.AddCommand(matchCmd, alongTrackCmd)
}
