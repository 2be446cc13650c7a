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
	"strings"
)

// DefaultHeadRows is the number of rows Head returns when rows is not positive.
const DefaultHeadRows = 5

// Catalog returns the catalog of all variables hosted by CMAP.
func (c *Client) Catalog(ctx context.Context) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspCatalog"))
}

// SearchCatalog returns the catalog entries matching the space separated keywords.
func (c *Client) SearchCatalog(ctx context.Context, keywords string) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspSearchCatalog", keywords))
}

// Datasets returns the list of datasets.
func (c *Client) Datasets(ctx context.Context) (*ResultSet, error) {
	return c.Execute(ctx, NewStatement("SELECT * FROM tblDatasets"))
}

// Head returns the first rows of a table.
func (c *Client) Head(ctx context.Context, table string, rows int) (*ResultSet, error) {
	if rows <= 0 {
		rows = DefaultHeadRows
	}
	return c.Execute(ctx, Exec("uspHead", table, rows))
}

// Columns returns the column names of a table.
func (c *Client) Columns(ctx context.Context, table string) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspColumns", table))
}

// DatasetMetadata returns the metadata of the dataset stored in table.
func (c *Client) DatasetMetadata(ctx context.Context, table string) (*ResultSet, error) {
	return c.Execute(ctx, NewStatement("SELECT * FROM dbo.udfDatasetMetadata(?)", table))
}

// Var returns the catalog row of a variable.
func (c *Client) Var(ctx context.Context, table, variable string) (*ResultSet, error) {
	return c.Execute(ctx, NewStatement(
		"SELECT * FROM tblVariables WHERE Table_Name = ? AND Short_Name = ?", table, variable))
}

// VarCatalog returns a single-row catalog of a variable.
func (c *Client) VarCatalog(ctx context.Context, table, variable string) (*ResultSet, error) {
	return c.Execute(ctx, NewStatement(
		"SELECT * FROM [dbo].udfCatalog() WHERE Table_Name = ? AND Variable = ?", table, variable))
}

// VarLongName returns the descriptive name of a variable.
func (c *Client) VarLongName(ctx context.Context, table, variable string) (string, error) {
	rs, err := c.Execute(ctx, NewStatement(
		"SELECT Long_Name, Short_Name FROM tblVariables WHERE Table_Name = ? AND Short_Name = ?", table, variable))
	if err != nil {
		return "", err
	}
	if rs.NumRows() < 1 {
		return "", &InvalidNameError{Kind: "variable", Name: table + "." + variable}
	}
	return rs.Text(0, "Long_Name")
}

// VarUnit returns the unit of a variable.
func (c *Client) VarUnit(ctx context.Context, table, variable string) (string, error) {
	rs, err := c.Execute(ctx, NewStatement(
		"SELECT Unit, Short_Name FROM tblVariables WHERE Table_Name = ? AND Short_Name = ?", table, variable))
	if err != nil {
		return "", err
	}
	if rs.NumRows() < 1 {
		return "", &InvalidNameError{Kind: "variable", Name: table + "." + variable}
	}
	return rs.Text(0, "Unit")
}

// VarResolution returns the spatial and temporal resolution of a variable.
func (c *Client) VarResolution(ctx context.Context, table, variable string) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspVariableResolution", table, variable))
}

// VarCoverage returns the spatial and temporal coverage of a variable.
func (c *Client) VarCoverage(ctx context.Context, table, variable string) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspVariableCoverage", table, variable))
}

// VarStat returns summary statistics of a variable.
func (c *Client) VarStat(ctx context.Context, table, variable string) (*ResultSet, error) {
	return c.Execute(ctx, Exec("uspVariableStat", table, variable))
}

// HasField reports whether table has a column named variable.
func (c *Client) HasField(ctx context.Context, table, variable string) (bool, error) {
	rs, err := c.Execute(ctx, NewStatement("SELECT COL_LENGTH(?, ?) AS RESULT", table, variable))
	if err != nil {
		return false, err
	}
	if rs.NumRows() < 1 {
		return false, nil
	}
	v, err := rs.Value(0, "RESULT")
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// IsGrid reports whether a variable is stored on a regular grid.
func (c *Client) IsGrid(ctx context.Context, table, variable string) (bool, error) {
	rs, err := c.Execute(ctx, NewStatement(
		"SELECT Spatial_Res_ID, RTRIM(LTRIM(Spatial_Resolution)) AS Spatial_Resolution FROM tblVariables "+
			"JOIN tblSpatial_Resolutions ON [tblVariables].Spatial_Res_ID = [tblSpatial_Resolutions].ID "+
			"WHERE Table_Name = ? AND Short_Name = ?", table, variable))
	if err != nil {
		return false, err
	}
	if rs.NumRows() < 1 {
		return false, &InvalidNameError{Kind: "variable", Name: table + "." + variable}
	}
	res, err := rs.Text(0, "Spatial_Resolution")
	if err != nil {
		return false, err
	}
	return !strings.Contains(strings.ToLower(res), "irregular"), nil
}

// References returns the references of a dataset.
func (c *Client) References(ctx context.Context, datasetID int64) (*ResultSet, error) {
	return c.Execute(ctx, NewStatement("SELECT Reference FROM dbo.udfDatasetReferences(?)", datasetID))
}

// MetadataNoRef returns the metadata of a variable without its dataset references.
func (c *Client) MetadataNoRef(ctx context.Context, table, variable string) (*ResultSet, error) {
	return c.Execute(ctx, NewStatement("SELECT * FROM dbo.udfMetaData_NoRef(?, ?)", table, variable))
}

// Metadata returns the metadata of a variable with the references of its
// dataset placed alongside.
func (c *Client) Metadata(ctx context.Context, table, variable string) (*ResultSet, error) {
	meta, err := c.MetadataNoRef(ctx, table, variable)
	if err != nil {
		return nil, err
	}
	if meta.NumRows() < 1 {
		return nil, &InvalidNameError{Kind: "variable", Name: table + "." + variable}
	}
	datasetID, err := meta.Int64(0, "Dataset_ID")
	if err != nil {
		return nil, fmt.Errorf("metadata of %s.%s: %w", table, variable, err)
	}
	refs, err := c.References(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return meta.JoinColumns(refs), nil
}
