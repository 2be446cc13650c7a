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

// addWindowFlags binds the time, latitude, longitude and depth bounds.
func addWindowFlags(flags *pflag.FlagSet, dt1, dt2 *string, bounds *[6]float64) {
	flags.StringVar(dt1, "dt1", "", "start date, e.g. 2016-04-30")
	flags.StringVar(dt2, "dt2", "", "end date")
	flags.Float64Var(&bounds[0], "lat1", -90, "southern latitude")
	flags.Float64Var(&bounds[1], "lat2", 90, "northern latitude")
	flags.Float64Var(&bounds[2], "lon1", -180, "western longitude")
	flags.Float64Var(&bounds[3], "lon2", 180, "eastern longitude")
	flags.Float64Var(&bounds[4], "depth1", 0, "shallow depth in meters")
	flags.Float64Var(&bounds[5], "depth2", 0, "deep depth in meters")
}

type windowFlags struct {
	table    string
	variable string
	dt1      string
	dt2      string
	bounds   [6]float64
}

func (w *windowFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&w.table, "table", "t", "", "table name")
	flags.StringVarP(&w.variable, "variable", "v", "", "variable short name")
	addWindowFlags(flags, &w.dt1, &w.dt2, &w.bounds)
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("variable")
	_ = cmd.MarkFlagRequired("dt1")
	_ = cmd.MarkFlagRequired("dt2")
}

func (w *windowFlags) spaceTime() cmap.SpaceTime {
	return cmap.SpaceTime{
		Table:    w.table,
		Variable: w.variable,
		Dt1:      w.dt1,
		Dt2:      w.dt2,
		Lat1:     w.bounds[0],
		Lat2:     w.bounds[1],
		Lon1:     w.bounds[2],
		Lon2:     w.bounds[3],
		Depth1:   w.bounds[4],
		Depth2:   w.bounds[5],
	}
}

var (
	spaceTimeWindow    windowFlags
	timeSeriesWindow   windowFlags
	depthProfileWindow windowFlags
	sectionWindow      windowFlags
	interval           string
)

var spaceTimeCmd = &cobra.Command{
	Use:   "space-time",
	Short: "Subset a variable by time, latitude, longitude and depth",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.SpaceTime(cmd.Context(), spaceTimeWindow.spaceTime())
	}),
}

var timeSeriesCmd = &cobra.Command{
	Use:   "time-series",
	Short: "Spatially averaged time series of a variable",
	Long: `time-series averages a variable over the window at each time step, or
per bin with --interval: w(eek), m(onth), q(uarter)/s(eason), a/y(ear).
Binning is not available for climatology datasets.`,
	Args: cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.TimeSeries(cmd.Context(), timeSeriesWindow.spaceTime(), interval)
	}),
}

var depthProfileCmd = &cobra.Command{
	Use:   "depth-profile",
	Short: "Depth profile of a variable averaged over the window",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.DepthProfile(cmd.Context(), depthProfileWindow.spaceTime())
	}),
}

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Vertical section of a variable",
	Args:  cobra.NoArgs,
	RunE: runResult(func(cmd *cobra.Command, c *cmap.Client, _ []string) (*cmap.ResultSet, error) {
		return c.Section(cmd.Context(), sectionWindow.spaceTime())
	}),
}

func init() {
	spaceTimeWindow.bind(spaceTimeCmd)
	timeSeriesWindow.bind(timeSeriesCmd)
	timeSeriesCmd.Flags().StringVar(&interval, "interval", "", "time binning interval")
	depthProfileWindow.bind(depthProfileCmd)
	sectionWindow.bind(sectionCmd)

	rootCmd.AddCommand(spaceTimeCmd, timeSeriesCmd, depthProfileCmd, sectionCmd)
}
