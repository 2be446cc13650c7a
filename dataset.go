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
	"errors"
	"fmt"
)

// MaxDatasetRows is the largest dataset Dataset retrieves in one request.
const MaxDatasetRows = 2_000_000

// DatasetID returns the ID of the dataset stored in table.
func (c *Client) DatasetID(ctx context.Context, table string) (int64, error) {
	rs, err := c.Execute(ctx, NewStatement(
		"SELECT DISTINCT(Dataset_ID) FROM dbo.tblVariables WHERE Table_Name = ?", table))
	if err != nil {
		return 0, err
	}
	if err := c.expectOne("table", table, rs); err != nil {
		return 0, err
	}
	if rs.NumColumns() < 1 {
		return 0, &ParseError{ContentType: contentTypeCSV, Err: errors.New("dataset id lookup returned no columns")}
	}
	return rs.Int64(0, rs.Schema[0].Name)
}

// DatasetRows returns the number of rows in the dataset stored in table, as
// recorded in the precomputed dataset statistics.
func (c *Client) DatasetRows(ctx context.Context, table string) (int64, error) {
	id, err := c.DatasetID(ctx, table)
	if err != nil {
		return 0, err
	}
	rs, err := c.Execute(ctx, NewStatement(
		"SELECT JSON_VALUE(JSON_stats, '$.lat.count') AS lat_count FROM tblDataset_Stats WHERE Dataset_ID = ?", id))
	if err != nil {
		return 0, err
	}
	if rs.NumRows() < 1 {
		return 0, fmt.Errorf("no statistics recorded for dataset %s (id %d)", table, id)
	}
	count, err := rs.Float64(0, "lat_count")
	if err != nil {
		return 0, fmt.Errorf("statistics of dataset %s: %w", table, err)
	}
	return int64(count), nil
}

// Dataset retrieves an entire dataset.
//
// Datasets holding more than MaxDatasetRows rows are refused with a
// *DatasetTooLargeError before the table is queried; use SpaceTime to
// retrieve them in chunks.
func (c *Client) Dataset(ctx context.Context, table string) (*ResultSet, error) {
	rows, err := c.DatasetRows(ctx, table)
	if err != nil {
		return nil, err
	}
	if rows > MaxDatasetRows {
		return nil, &DatasetTooLargeError{Table: table, Rows: rows, Limit: MaxDatasetRows}
	}
	return c.Execute(ctx, NewStatement("SELECT * FROM ?", Ident(table)))
}
