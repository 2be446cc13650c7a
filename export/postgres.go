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
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

// PgConn is the part of *pgx.Conn and *pgxpool.Pool used by PostgresSink.
type PgConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// ConnectPostgres opens a connection pool and checks it with a ping.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// PostgresSink bulk loads a result set with COPY. The table is created when
// missing.
type PostgresSink struct {
	Conn PgConn
	// Table may be schema qualified, e.g. "public.sst".
	Table string
	// Replace drops the table first.
	Replace bool
}

func (s *PostgresSink) Export(ctx context.Context, rs *cmap.ResultSet) error {
	if s.Table == "" {
		return fmt.Errorf("export: table name is empty")
	}
	if rs.NumColumns() == 0 {
		return fmt.Errorf("export: result set has no columns")
	}

	ident := pgx.Identifier(strings.Split(s.Table, "."))
	table := ident.Sanitize()
	if s.Replace {
		if _, err := s.Conn.Exec(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
	}
	if _, err := s.Conn.Exec(ctx, createTable(table, rs.Schema, postgresTypes)); err != nil {
		return err
	}

	rows := make([][]any, 0, rs.NumRows())
	for i := 0; i < rs.NumRows(); i++ {
		row := make([]any, 0, rs.NumColumns())
		for _, v := range rs.Row(i) {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	n, err := s.Conn.CopyFrom(ctx, ident, rs.Columns(), pgx.CopyFromRows(rows))
	if err != nil {
		return err
	}
	if n != int64(len(rows)) {
		return fmt.Errorf("copied %d rows, expected %d", n, len(rows))
	}
	return nil
}
