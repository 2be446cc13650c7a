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

package export

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSQLSinkStatements(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE IF EXISTS "main"."sst"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "main"."sst" ("time" TEXT, "lat" REAL, "depth" INTEGER, "valid" INTEGER, "cruise" TEXT)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(`INSERT INTO "main"."sst" ("time", "lat", "depth", "valid", "cruise") VALUES (?, ?, ?, ?, ?)`)
	prep.ExpectExec().
		WithArgs("2016-04-30T00:00:00Z", 21.5, int64(5), true, "KM1314").
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs("2016-04-30T01:00:00Z", -0.25, nil, false, `say "hi", twice`).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	sink := &SQLSink{DB: db, Table: "main.sst", Dialect: SQLite, Replace: true}
	require.NoError(t, sink.Export(context.Background(), sampleResultSet(t)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSinkRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare("INSERT INTO")
	prep.ExpectExec().WillReturnError(driver.ErrBadConn)
	mock.ExpectRollback()

	sink := &SQLSink{DB: db, Table: "sst", Dialect: SQLite}
	require.Error(t, sink.Export(context.Background(), sampleResultSet(t)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	sink := &SQLSink{DB: db, Table: "sst", Dialect: SQLite}
	require.NoError(t, sink.Export(ctx, sampleResultSet(t)))
	// a second export appends
	require.NoError(t, sink.Export(ctx, sampleResultSet(t)))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "sst"`).Scan(&n))
	require.Equal(t, 4, n)

	var (
		ts     string
		lat    float64
		cruise string
	)
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT "time", "lat", "cruise" FROM "sst" WHERE "depth" IS NULL LIMIT 1`).Scan(&ts, &lat, &cruise))
	require.Equal(t, "2016-04-30T01:00:00Z", ts)
	require.Equal(t, -0.25, lat)
	require.Equal(t, `say "hi", twice`, cruise)

	sink.Replace = true
	require.NoError(t, sink.Export(ctx, sampleResultSet(t)))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "sst"`).Scan(&n))
	require.Equal(t, 2, n)
}
