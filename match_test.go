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
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	cmap "github.com/simonscmap/cmap-sdk/go"
	"github.com/simonscmap/cmap-sdk/go/internal/cmaptest"
)

func newMatchRequest() *cmap.MatchRequest {
	return &cmap.MatchRequest{
		SourceTable:     "tblSeaFlow",
		SourceVariable:  "prochloro_abundance",
		TargetTables:    []string{"tblSST_AVHRR_OI_NRT", "tblAltimetry_REP_Signal"},
		TargetVariables: []string{"sst", "sla"},
		Dt1:             "2016-04-30",
		Dt2:             "2016-04-30",
		Lat1:            23, Lat2: 24,
		Lon1: -160, Lon2: -158,
		Depth1: 0, Depth2: 5,
		Tolerances: cmap.Tolerances{
			Temporal: []float64{1, 2},
			Lat:      []float64{0.25},
			Lon:      []float64{0.25},
			Depth:    []float64{5},
		},
	}
}

func TestMatchStatements(t *testing.T) {
	stmts, err := newMatchRequest().Statements()
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	for _, s := range stmts {
		require.Len(t, s.Args(), 16)
	}
	const window = "'2016-04-30', '2016-04-30', 23, 24, -160, -158, 0, 5"
	require.Equal(t,
		"EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblSST_AVHRR_OI_NRT', 'sst', "+window+", 1, 0.25, 0.25, 5",
		stmts[0].String())
	require.Equal(t,
		"EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblAltimetry_REP_Signal', 'sla', "+window+", 2, 0.25, 0.25, 5",
		stmts[1].String())
}

func TestMatchMisaligned(t *testing.T) {
	for name, mutate := range map[string]func(r *cmap.MatchRequest){
		"no targets":          func(r *cmap.MatchRequest) { r.TargetTables, r.TargetVariables = nil, nil },
		"fewer variables":     func(r *cmap.MatchRequest) { r.TargetVariables = r.TargetVariables[:1] },
		"temporal length":     func(r *cmap.MatchRequest) { r.Tolerances.Temporal = []float64{1, 2, 3} },
		"missing depth":       func(r *cmap.MatchRequest) { r.Tolerances.Depth = nil },
		"more targets than tolerances": func(r *cmap.MatchRequest) {
			r.TargetTables = append(r.TargetTables, "x")
			r.TargetVariables = append(r.TargetVariables, "y")
		},
	} {
		t.Run(name, func(t *testing.T) {
			srv, c := NewStub(t)
			r := newMatchRequest()
			mutate(r)

			_, err := c.Match(context.Background(), r)
			require.ErrorIs(t, err, cmap.ErrMisalignedTargets)
			require.Empty(t, srv.Requests())
		})
	}
}

func TestMatchMergesTargets(t *testing.T) {
	srv, c := NewStub(t)

	lat1, lat2 := gofakeit.Latitude(), gofakeit.Latitude()
	lon := gofakeit.Longitude()
	rows := func(column string, v1, v2 string) string {
		var b strings.Builder
		b.WriteString("time,lat,lon,depth,prochloro_abundance," + column + "\n")
		b.WriteString("2016-04-30T00:00:00," + ftoa(lat1) + "," + ftoa(lon) + ",5,100.5," + v1 + "\n")
		b.WriteString("2016-04-30T01:00:00," + ftoa(lat2) + "," + ftoa(lon) + ",5,200.5," + v2 + "\n")
		return b.String()
	}
	srv.HandlePrefix("EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblSST_AVHRR_OI_NRT'",
		cmaptest.CSV(rows("sst", "25.1", "25.3")))
	srv.HandlePrefix("EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblAltimetry_REP_Signal'",
		cmaptest.CSV(rows("sla", "0.12", "")))

	rs, err := c.Match(context.Background(), newMatchRequest())
	require.NoError(t, err)
	require.Equal(t, []string{"time", "lat", "lon", "depth", "prochloro_abundance", "sst", "sla"}, rs.Columns())
	require.Equal(t, 2, rs.NumRows())

	sla, err := rs.Value(1, "sla")
	require.NoError(t, err)
	require.Nil(t, sla)
	sst, err := rs.Float64(0, "sst")
	require.NoError(t, err)
	require.Equal(t, 25.1, sst)
	require.Len(t, srv.Requests(), 2)
}

func TestMatchSkipsEmptyTargets(t *testing.T) {
	srv, c := NewStub(t)

	srv.HandlePrefix("EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblSST_AVHRR_OI_NRT'",
		cmaptest.CSV(""))
	srv.HandlePrefix("EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblAltimetry_REP_Signal'",
		cmaptest.CSV("time,sla\n2016-04-30,0.1\n"))

	rs, err := c.Match(context.Background(), newMatchRequest())
	require.NoError(t, err)
	require.Equal(t, []string{"time", "sla"}, rs.Columns())
	require.Equal(t, 1, rs.NumRows())
}

func TestMatchRowMismatch(t *testing.T) {
	srv, c := NewStub(t)

	srv.HandlePrefix("EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblSST_AVHRR_OI_NRT'",
		cmaptest.CSV("time,sst\n2016-04-30,1\n2016-05-01,2\n"))
	srv.HandlePrefix("EXEC uspMatch 'tblSeaFlow', 'prochloro_abundance', 'tblAltimetry_REP_Signal'",
		cmaptest.CSV("time,sla\n2016-04-30,0.1\n"))

	_, err := c.Match(context.Background(), newMatchRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "tblAltimetry_REP_Signal.sla")
}

func TestAlongTrack(t *testing.T) {
	srv, c := NewStub(t)

	srv.Handle("EXEC uspCruiseByName 'KM1314'", cmaptest.CSV("ID,Name\n7,KM1314\n"))
	srv.Handle("EXEC uspCruiseBounds 7", cmaptest.CSV(
		"dt1,dt2,lat1,lat2,lon1,lon2\n2013-09-01T00:00:00,2013-09-20T06:30:00,21.5,30.25,-160.1,-150\n"))

	rs, err := c.AlongTrack(context.Background(), &cmap.AlongTrackRequest{
		Cruise:          "KM1314",
		TargetTables:    []string{"tblSST_AVHRR_OI_NRT"},
		TargetVariables: []string{"sst"},
		Depth1:          0,
		Depth2:          5,
		Tolerances: cmap.Tolerances{
			Temporal: []float64{1},
			Lat:      []float64{0.25},
			Lon:      []float64{0.25},
			Depth:    []float64{5},
		},
	})
	require.NoError(t, err)
	require.Equal(t,
		"EXEC uspMatch 'tblCruise_Trajectory', '7', 'tblSST_AVHRR_OI_NRT', 'sst', "+
			"'2013-09-01T00:00:00', '2013-09-20T06:30:00', 21.5, 30.25, -160.1, -150, 0, 5, 1, 0.25, 0.25, 5",
		Echoed(t, rs))
}

func TestAlongTrackUnknownCruise(t *testing.T) {
	srv, c := NewStub(t)
	srv.HandlePrefix("EXEC uspCruiseByName", cmaptest.CSV("ID,Name\n"))

	_, err := c.AlongTrack(context.Background(), &cmap.AlongTrackRequest{
		Cruise:          "nope",
		TargetTables:    []string{"t"},
		TargetVariables: []string{"v"},
		Tolerances: cmap.Tolerances{
			Temporal: []float64{1}, Lat: []float64{1}, Lon: []float64{1}, Depth: []float64{1},
		},
	})
	require.ErrorIs(t, err, cmap.ErrInvalidName)
	require.Len(t, srv.Requests(), 1)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
