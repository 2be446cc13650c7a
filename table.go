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

// Table is a handle on one CMAP table. It binds the table name to the
// table-scoped accessors of a client.
//
// CMAP resolves tables by their bare name, as recorded in the Table_Name
// column of the catalog.
type Table struct {
	c *Client

	// Table is the name of the table.
	Table string
}

func (c *Client) Table(tableName string) *Table {
	return &Table{
		c:     c,
		Table: tableName,
	}
}

// Identifier returns the bracket-quoted table name, as Fetch sends it.
func (t *Table) Identifier() string {
	return quoteIdent(t.Table)
}

func (t *Table) Head(ctx context.Context, rows int) (*ResultSet, error) {
	return t.c.Head(ctx, t.Table, rows)
}

func (t *Table) Columns(ctx context.Context) (*ResultSet, error) {
	return t.c.Columns(ctx, t.Table)
}

// ColumnNames returns the column names of the table as a plain list.
func (t *Table) ColumnNames(ctx context.Context) ([]string, error) {
	rs, err := t.c.Columns(ctx, t.Table)
	if err != nil {
		return nil, err
	}
	if rs.NumColumns() < 1 {
		return nil, nil
	}
	first := rs.Schema[0].Name
	names := make([]string, 0, rs.NumRows())
	for i := 0; i < rs.NumRows(); i++ {
		name, err := rs.Text(i, first)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", t.Table, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func (t *Table) Metadata(ctx context.Context) (*ResultSet, error) {
	return t.c.DatasetMetadata(ctx, t.Table)
}

func (t *Table) DatasetID(ctx context.Context) (int64, error) {
	return t.c.DatasetID(ctx, t.Table)
}

func (t *Table) Rows(ctx context.Context) (int64, error) {
	return t.c.DatasetRows(ctx, t.Table)
}

// Fetch retrieves the whole table, subject to the MaxDatasetRows guard.
func (t *Table) Fetch(ctx context.Context) (*ResultSet, error) {
	return t.c.Dataset(ctx, t.Table)
}

func (t *Table) HasField(ctx context.Context, variable string) (bool, error) {
	return t.c.HasField(ctx, t.Table, variable)
}

// SpaceTime returns a window over one variable of the table, to be filled
// with the bounds and passed to the subset accessors.
func (t *Table) SpaceTime(variable string) SpaceTime {
	return SpaceTime{Table: t.Table, Variable: variable}
}
