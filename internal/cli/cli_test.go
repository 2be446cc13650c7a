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
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cmap "github.com/simonscmap/cmap-sdk/go"
	"github.com/simonscmap/cmap-sdk/go/export"
	"github.com/simonscmap/cmap-sdk/go/internal/cmaptest"
)

func run(t *testing.T, srv *cmaptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--base-url", srv.URL,
		"--api-key", cmaptest.APIKey,
		"--format", "csv",
		"--log-level", "off",
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func echoed(t *testing.T, out string) string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, []string{cmaptest.EchoColumn}, records[0])
	return records[1][0]
}

func TestCommandStatements(t *testing.T) {
	srv := cmaptest.NewServer()
	defer srv.Close()

	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"catalog"}, "EXEC uspCatalog"},
		{[]string{"search", "nitrite in-situ"}, "EXEC uspSearchCatalog 'nitrite in-situ'"},
		{[]string{"head", "tblFalkor_2018", "-n", "3"}, "EXEC uspHead 'tblFalkor_2018', 3"},
		{[]string{"columns", "tblFalkor_2018"}, "EXEC uspColumns 'tblFalkor_2018'"},
		{[]string{"var", "stat", "tblModis_AOD_REP", "AOD"}, "EXEC uspVariableStat 'tblModis_AOD_REP', 'AOD'"},
		{[]string{"query", "SELECT 1"}, "SELECT 1"},
		{
			[]string{"time-series", "-t", "tblSST", "-v", "sst", "--dt1", "2016-01-01", "--dt2", "2016-12-31",
				"--lat1", "20", "--lat2", "24", "--lon1", "-160", "--lon2", "-156", "--interval", "m"},
			"EXEC uspMonthly 'tblSST', 'sst', '2016-01-01', '2016-12-31', 20, 24, -160, -156, 0, 0",
		},
	} {
		t.Run(tc.args[0], func(t *testing.T) {
			out, err := run(t, srv, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.want, echoed(t, out))
		})
	}
}

func TestCommandErrors(t *testing.T) {
	srv := cmaptest.NewServer()
	defer srv.Close()

	_, err := run(t, srv, "time-series", "-t", "tblWOA_Climatology", "-v", "sst",
		"--dt1", "2016-01-01", "--dt2", "2016-12-31", "--interval", "monthly")
	require.ErrorIs(t, err, cmap.ErrClimatologyBinning)

	_, err = run(t, srv, "export", "SELECT 1")
	require.Error(t, err)

	_, err = run(t, srv, "--format", "xlsx", "catalog")
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	srv := cmaptest.NewServer()
	defer srv.Close()
	srv.Handle("SELECT * FROM tblCruise", cmaptest.CSV("ID,Name\n7,KM1314\n8,KM1315\n"))

	path := filepath.Join(t.TempDir(), "cmap.db")
	_, err := run(t, srv, "export", "--sqlite", path, "--table", "cruises", "SELECT * FROM tblCruise")
	require.NoError(t, err)

	db, err := export.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "cruises"`).Scan(&n))
	require.Equal(t, 2, n)
}

func TestSetKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	srv := cmaptest.NewServer()
	defer srv.Close()

	_, err := run(t, srv, "set-key", cmaptest.APIKey)
	require.NoError(t, err)

	store, err := cmap.NewFileKeyStore()
	require.NoError(t, err)
	key, err := store.LoadAPIKey()
	require.NoError(t, err)
	require.Equal(t, cmaptest.APIKey, key)

	// an empty --api-key falls back to the stored key
	out, err := run(t, srv, "--api-key", "", "datasets")
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM tblDatasets", echoed(t, out))
}
