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
	"context"
	"fmt"
)

// SpaceTime is a space-time window over one variable of a table.
//
// Dates are passed to the server verbatim (e.g. "2016-04-30" or
// "2016-04-30T00:00:00"). Latitudes are in [-90, 90], longitudes in
// [-180, 180] and depths are positive meters, by convention only.
type SpaceTime struct {
	Table    string
	Variable string
	Dt1      string
	Dt2      string
	Lat1     float64
	Lat2     float64
	Lon1     float64
	Lon2     float64
	Depth1   float64
	Depth2   float64
}

func (q SpaceTime) args() []any {
	return []any{
		q.Table, q.Variable,
		q.Dt1, q.Dt2,
		q.Lat1, q.Lat2,
		q.Lon1, q.Lon2,
		q.Depth1, q.Depth2,
	}
}

// SubsetStatement returns the statement invoking procedure over the window q.
func SubsetStatement(procedure string, q SpaceTime) *Statement {
	return Exec(procedure, q.args()...)
}

// Subset invokes a space-time stored procedure over the window q.
func (c *Client) Subset(ctx context.Context, procedure string, q SpaceTime) (*ResultSet, error) {
	return c.Execute(ctx, SubsetStatement(procedure, q))
}

// SpaceTime returns the values of a variable inside the window q.
func (c *Client) SpaceTime(ctx context.Context, q SpaceTime) (*ResultSet, error) {
	return c.Subset(ctx, ProcSpaceTime, q)
}

// TimeSeries returns the spatially averaged time series of a variable inside
// the window q, optionally binned by interval (see IntervalProcedure).
//
// Custom binning of climatology datasets is refused with
// ErrClimatologyBinning.
func (c *Client) TimeSeries(ctx context.Context, q SpaceTime, interval string) (*ResultSet, error) {
	if interval != "" && IsClimatology(q.Table) {
		return nil, fmt.Errorf("%s: %w", q.Table, ErrClimatologyBinning)
	}
	procedure, err := IntervalProcedure(interval)
	if err != nil {
		return nil, err
	}
	return c.Subset(ctx, procedure, q)
}

// DepthProfile returns the depth profile of a variable averaged over the window q.
func (c *Client) DepthProfile(ctx context.Context, q SpaceTime) (*ResultSet, error) {
	return c.Subset(ctx, ProcDepthProfile, q)
}

// Section returns a vertical section of a variable inside the window q.
func (c *Client) Section(ctx context.Context, q SpaceTime) (*ResultSet, error) {
	return c.Subset(ctx, ProcSection, q)
}
