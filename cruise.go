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

// Cruises returns the list of cruises in the database.
func (c *Client) Cruises(ctx context.Context) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspCruises"))
}

// CruiseByName returns the single cruise whose name or nickname matches name.
//
// No match yields an *InvalidNameError; several matches yield an
// *AmbiguousNameError holding the matching rows.
func (c *Client) CruiseByName(ctx context.Context, name string) (*ResultSet, error) {
	rs, err := c.Execute(ctx, Exec("uspCruiseByName", name))
	if err != nil {
		return nil, err
	}
	if err := c.expectOne("cruise", name, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// CruiseID resolves a cruise name to its ID.
func (c *Client) CruiseID(ctx context.Context, name string) (int64, error) {
	rs, err := c.CruiseByName(ctx, name)
	if err != nil {
		return 0, err
	}
	id, err := rs.Int64(0, "ID")
	if err != nil {
		return 0, fmt.Errorf("cruise %s: %w", name, err)
	}
	return id, nil
}

// CruiseBounds returns the spatio-temporal bounding box of a cruise.
func (c *Client) CruiseBounds(ctx context.Context, name string) (*ResultSet, error) {
	id, err := c.CruiseID(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, Exec("uspCruiseBounds", id))
}

// CruiseTrajectory returns the time, latitude and longitude of a cruise track.
func (c *Client) CruiseTrajectory(ctx context.Context, name string) (*ResultSet, error) {
	id, err := c.CruiseID(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, Exec("uspCruiseTrajectory", id))
}

// CruiseVariables returns the variables measured during a cruise.
func (c *Client) CruiseVariables(ctx context.Context, name string) (*ResultSet, error) {
	id, err := c.CruiseID(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, NewStatement("SELECT * FROM dbo.udfCruiseVariables(?)", id))
}
