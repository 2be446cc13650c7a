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
	"strconv"
	"time"
)

// CruiseTrajectoryTable is the source table used to colocalize along a cruise track.
const CruiseTrajectoryTable = "tblCruise_Trajectory"

// Tolerances holds the matching tolerances of each target, position by
// position. A slice of length one applies to every target.
type Tolerances struct {
	// Temporal is in days.
	Temporal []float64
	// Lat is in degrees.
	Lat []float64
	// Lon is in degrees.
	Lon []float64
	// Depth is in meters.
	Depth []float64
}

// MatchRequest colocalizes one source variable with target variables.
//
// TargetTables[i] and TargetVariables[i] name the i-th target. The source
// window is given by the time, latitude, longitude and depth bounds.
type MatchRequest struct {
	SourceTable     string
	SourceVariable  string
	TargetTables    []string
	TargetVariables []string

	Dt1    string
	Dt2    string
	Lat1   float64
	Lat2   float64
	Lon1   float64
	Lon2   float64
	Depth1 float64
	Depth2 float64

	Tolerances Tolerances
}

// Validate checks that the target and tolerance arrays line up.
func (r *MatchRequest) Validate() error {
	n := len(r.TargetTables)
	if n == 0 {
		return fmt.Errorf("%w: no target tables", ErrMisalignedTargets)
	}
	if len(r.TargetVariables) != n {
		return fmt.Errorf("%w: %d target tables but %d target variables",
			ErrMisalignedTargets, n, len(r.TargetVariables))
	}
	for _, tol := range []struct {
		name   string
		values []float64
	}{
		{"temporal", r.Tolerances.Temporal},
		{"latitude", r.Tolerances.Lat},
		{"longitude", r.Tolerances.Lon},
		{"depth", r.Tolerances.Depth},
	} {
		if len(tol.values) != 1 && len(tol.values) != n {
			return fmt.Errorf("%w: %d %s tolerances for %d targets",
				ErrMisalignedTargets, len(tol.values), tol.name, n)
		}
	}
	return nil
}

func tolerance(values []float64, i int) float64 {
	if len(values) == 1 {
		return values[0]
	}
	return values[i]
}

// Statements returns one uspMatch statement per target, in target order.
func (r *MatchRequest) Statements() ([]*Statement, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	stmts := make([]*Statement, 0, len(r.TargetTables))
	for i := range r.TargetTables {
		stmts = append(stmts, Exec(ProcMatch,
			r.SourceTable, r.SourceVariable,
			r.TargetTables[i], r.TargetVariables[i],
			r.Dt1, r.Dt2,
			r.Lat1, r.Lat2,
			r.Lon1, r.Lon2,
			r.Depth1, r.Depth2,
			tolerance(r.Tolerances.Temporal, i),
			tolerance(r.Tolerances.Lat, i),
			tolerance(r.Tolerances.Lon, i),
			tolerance(r.Tolerances.Depth, i),
		))
	}
	return stmts, nil
}

// Match colocalizes the source variable with each target variable and
// returns the source rows with the matched target columns appended.
//
// Targets without any match are skipped.
func (c *Client) Match(ctx context.Context, r *MatchRequest) (*ResultSet, error) {
	stmts, err := r.Statements()
	if err != nil {
		return nil, err
	}

	var merged *ResultSet
	for i, s := range stmts {
		rs, err := c.Execute(ctx, s)
		if err != nil {
			return nil, err
		}
		if rs.NumRows() == 0 {
			c.logger.Warn("no matching entry found", c.logger.Args(
				"target_table", r.TargetTables[i],
				"target_variable", r.TargetVariables[i],
			))
			if merged == nil {
				merged = rs
			}
			continue
		}
		if merged == nil || merged.NumRows() == 0 {
			merged = rs
			continue
		}
		if merged, err = appendNewColumns(merged, rs); err != nil {
			return nil, fmt.Errorf("target %s.%s: %w", r.TargetTables[i], r.TargetVariables[i], err)
		}
	}
	return merged, nil
}

// appendNewColumns appends the columns of other that base lacks.
func appendNewColumns(base, other *ResultSet) (*ResultSet, error) {
	if base.NumRows() != other.NumRows() {
		return nil, fmt.Errorf("matched %d rows, expected %d", other.NumRows(), base.NumRows())
	}
	var shared []string
	for _, f := range other.Schema {
		if base.ColumnIndex(f.Name) >= 0 {
			shared = append(shared, f.Name)
		}
	}
	if len(shared) == other.NumColumns() {
		return base, nil
	}
	return base.JoinColumns(other.DropColumns(shared...)), nil
}

// AlongTrackRequest colocalizes a cruise trajectory with target variables.
type AlongTrackRequest struct {
	Cruise          string
	TargetTables    []string
	TargetVariables []string
	Depth1          float64
	Depth2          float64
	Tolerances      Tolerances
}

// AlongTrack colocalizes the track of a cruise with the target variables.
//
// The cruise bounding box supplies the time, latitude and longitude window of
// the match; the depth window comes from the request.
func (c *Client) AlongTrack(ctx context.Context, r *AlongTrackRequest) (*ResultSet, error) {
	probe := &MatchRequest{
		TargetTables:    r.TargetTables,
		TargetVariables: r.TargetVariables,
		Tolerances:      r.Tolerances,
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	id, err := c.CruiseID(ctx, r.Cruise)
	if err != nil {
		return nil, err
	}
	bounds, err := c.Execute(ctx, Exec("uspCruiseBounds", id))
	if err != nil {
		return nil, err
	}
	if bounds.NumRows() < 1 {
		return nil, &InvalidNameError{Kind: "cruise", Name: r.Cruise}
	}

	m, err := matchFromBounds(id, bounds, r)
	if err != nil {
		return nil, fmt.Errorf("bounds of cruise %s: %w", r.Cruise, err)
	}
	return c.Match(ctx, m)
}

func matchFromBounds(id int64, bounds *ResultSet, r *AlongTrackRequest) (*MatchRequest, error) {
	var err error
	m := &MatchRequest{
		SourceTable:     CruiseTrajectoryTable,
		SourceVariable:  strconv.FormatInt(id, 10),
		TargetTables:    r.TargetTables,
		TargetVariables: r.TargetVariables,
		Depth1:          r.Depth1,
		Depth2:          r.Depth2,
		Tolerances:      r.Tolerances,
	}
	if m.Dt1, err = boundDate(bounds, "dt1"); err != nil {
		return nil, err
	}
	if m.Dt2, err = boundDate(bounds, "dt2"); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		column string
		dst    *float64
	}{
		{"lat1", &m.Lat1},
		{"lat2", &m.Lat2},
		{"lon1", &m.Lon1},
		{"lon2", &m.Lon2},
	} {
		if *f.dst, err = bounds.Float64(0, f.column); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func boundDate(bounds *ResultSet, column string) (string, error) {
	v, err := bounds.Value(0, column)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(timestampLiteralLayout), nil
	case string:
		return t, nil
	default:
		return "", fmt.Errorf("column %q: expected date, got %T", column, v)
	}
}
