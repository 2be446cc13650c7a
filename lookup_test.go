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

package cmap_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	cmap "github.com/simonscmap/cmap-sdk/go"
	"github.com/simonscmap/cmap-sdk/go/internal/cmaptest"
)

const (
	datasetIDQuery    = "SELECT DISTINCT(Dataset_ID) FROM dbo.tblVariables WHERE Table_Name = 'tblSeaFlow'"
	datasetStatsQuery = "SELECT JSON_VALUE(JSON_stats, '$.lat.count') AS lat_count FROM tblDataset_Stats WHERE Dataset_ID = 161"
	datasetFullQuery  = "SELECT * FROM [tblSeaFlow]"
)

func TestCruiseByName(t *testing.T) {
	srv, c := NewStub(t)
	ctx := context.Background()

	srv.Handle("EXEC uspCruiseByName 'KM1314'",
		cmaptest.CSV("ID,Name,Nickname,Keywords\n7,KM1314,Kilo Moana,\"a, b\"\n"))
	srv.Handle("EXEC uspCruiseByName 'nothing'", cmaptest.CSV("ID,Name,Nickname,Keywords\n"))
	srv.Handle("EXEC uspCruiseByName 'KM'", cmaptest.CSV(
		"ID,Name,Nickname,Keywords\n7,KM1314,Kilo Moana,a\n8,KM1315,Kilo Moana,b\n"))

	id, err := c.CruiseID(ctx, "KM1314")
	require.NoError(t, err)
	require.Equal(t, int64(7), id)

	_, err = c.CruiseByName(ctx, "nothing")
	require.ErrorIs(t, err, cmap.ErrInvalidName)
	require.EqualError(t, err, "invalid cruise name: nothing")

	_, err = c.CruiseByName(ctx, "KM")
	require.ErrorIs(t, err, cmap.ErrAmbiguousName)
	var ambiguous *cmap.AmbiguousNameError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, 2, ambiguous.Matches.NumRows())
	require.Equal(t, []string{"ID", "Name", "Nickname"}, ambiguous.Matches.Columns())
	require.EqualError(t, err,
		`more than one cruise matches "KM" (2 rows); please provide a more specific cruise name`)
}

func TestCruiseAccessors(t *testing.T) {
	srv, c := NewStub(t)
	ctx := context.Background()

	srv.Handle("EXEC uspCruiseByName 'KM1314'", cmaptest.CSV("ID,Name\n7,KM1314\n"))

	rs, err := c.CruiseBounds(ctx, "KM1314")
	require.NoError(t, err)
	require.Equal(t, "EXEC uspCruiseBounds 7", Echoed(t, rs))

	rs, err = c.CruiseTrajectory(ctx, "KM1314")
	require.NoError(t, err)
	require.Equal(t, "EXEC uspCruiseTrajectory 7", Echoed(t, rs))

	rs, err = c.CruiseVariables(ctx, "KM1314")
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM dbo.udfCruiseVariables(7)", Echoed(t, rs))
}

func TestDatasetID(t *testing.T) {
	srv, c := NewStub(t)
	ctx := context.Background()

	srv.Handle(datasetIDQuery, cmaptest.CSV("Dataset_ID\n161\n"))
	id, err := c.DatasetID(ctx, "tblSeaFlow")
	require.NoError(t, err)
	require.Equal(t, int64(161), id)

	srv.HandlePrefix("SELECT DISTINCT(Dataset_ID)", cmaptest.CSV("Dataset_ID\n"))
	_, err = c.DatasetID(ctx, "tblUnknown")
	require.ErrorIs(t, err, cmap.ErrInvalidName)
	require.EqualError(t, err, "invalid table name: tblUnknown")
}

func TestDatasetIDAmbiguous(t *testing.T) {
	srv, c := NewStub(t)
	ctx := context.Background()

	srv.Handle(datasetIDQuery, cmaptest.CSV("Dataset_ID\n161\n162\n"))

	_, err := c.DatasetID(ctx, "tblSeaFlow")
	require.ErrorIs(t, err, cmap.ErrAmbiguousName)
	var ambiguous *cmap.AmbiguousNameError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, "table", ambiguous.Kind)
	require.Equal(t, 2, ambiguous.Matches.NumRows())

	// the size guard stops at the failed lookup
	_, err = c.Dataset(ctx, "tblSeaFlow")
	require.ErrorIs(t, err, cmap.ErrAmbiguousName)
	require.Equal(t, []string{datasetIDQuery, datasetIDQuery}, srv.Queries())
}

func TestDatasetSizeGuard(t *testing.T) {
	for _, tc := range []struct {
		rows    int64
		refused bool
	}{
		{rows: 10, refused: false},
		{rows: cmap.MaxDatasetRows, refused: false},
		{rows: cmap.MaxDatasetRows + 1, refused: true},
		{rows: 50_000_000, refused: true},
	} {
		t.Run(strconv.FormatInt(tc.rows, 10), func(t *testing.T) {
			srv, c := NewStub(t)
			srv.Handle(datasetIDQuery, cmaptest.CSV("Dataset_ID\n161\n"))
			srv.Handle(datasetStatsQuery, cmaptest.CSV("lat_count\n"+strconv.FormatInt(tc.rows, 10)+"\n"))

			rs, err := c.Dataset(context.Background(), "tblSeaFlow")
			if tc.refused {
				require.ErrorIs(t, err, cmap.ErrDatasetTooLarge)
				var tooLarge *cmap.DatasetTooLargeError
				require.ErrorAs(t, err, &tooLarge)
				require.Equal(t, tc.rows, tooLarge.Rows)
				require.NotContains(t, srv.Queries(), datasetFullQuery)
				return
			}
			require.NoError(t, err)
			require.Equal(t, datasetFullQuery, Echoed(t, rs))
			require.Equal(t, []string{datasetIDQuery, datasetStatsQuery, datasetFullQuery}, srv.Queries())
		})
	}
}

func TestDatasetMissingStats(t *testing.T) {
	srv, c := NewStub(t)
	srv.Handle(datasetIDQuery, cmaptest.CSV("Dataset_ID\n161\n"))
	srv.Handle(datasetStatsQuery, cmaptest.CSV("lat_count\n"))

	_, err := c.Dataset(context.Background(), "tblSeaFlow")
	require.Error(t, err)
	require.NotContains(t, srv.Queries(), datasetFullQuery)
}

func TestTableHandle(t *testing.T) {
	srv, c := NewStub(t)
	ctx := context.Background()

	tbl := c.Table("tblSeaFlow")
	require.Equal(t, "[tblSeaFlow]", tbl.Identifier())

	srv.Handle("EXEC uspColumns 'tblSeaFlow'", cmaptest.CSV("Columns\ntime\nlat\nlon\nabundance\n"))
	names, err := tbl.ColumnNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"time", "lat", "lon", "abundance"}, names)

	srv.Handle(datasetIDQuery, cmaptest.CSV("Dataset_ID\n161\n"))
	srv.Handle(datasetStatsQuery, cmaptest.CSV("lat_count\n1234\n"))
	rows, err := tbl.Rows(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1234), rows)

	q := tbl.SpaceTime("abundance")
	require.Equal(t, "tblSeaFlow", q.Table)
	require.Equal(t, "abundance", q.Variable)

	rs, err := tbl.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM "+tbl.Identifier(), Echoed(t, rs))
	require.Equal(t, datasetFullQuery, Echoed(t, rs))
}
