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
	"database/sql"
	"fmt"
	"strings"
	"time"

	cmap "github.com/simonscmap/cmap-sdk/go"

	_ "modernc.org/sqlite"
)

// Dialect is the SQL flavor a SQLSink writes.
type Dialect struct {
	Name  string
	Types map[cmap.DataType]string
	// Placeholder returns the bind marker of the i-th argument, 1-based.
	Placeholder func(i int) string
	// Timestamp converts a timestamp cell before binding. Optional.
	Timestamp func(t time.Time) any
}

var SQLite = Dialect{
	Name: "sqlite",
	Types: map[cmap.DataType]string{
		cmap.StringDataType:    "TEXT",
		cmap.IntDataType:       "INTEGER",
		cmap.FloatDataType:     "REAL",
		cmap.BooleanDataType:   "INTEGER",
		cmap.TimestampDataType: "TEXT",
	},
	Placeholder: func(int) string { return "?" },
	Timestamp:   func(t time.Time) any { return t.UTC().Format(time.RFC3339Nano) },
}

var Postgres = Dialect{
	Name:        "postgres",
	Types:       postgresTypes,
	Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
}

var postgresTypes = map[cmap.DataType]string{
	cmap.StringDataType:    "TEXT",
	cmap.IntDataType:       "BIGINT",
	cmap.FloatDataType:     "DOUBLE PRECISION",
	cmap.BooleanDataType:   "BOOLEAN",
	cmap.TimestampDataType: "TIMESTAMP",
}

// OpenSQLite opens (or creates) a SQLite database file. Use ":memory:" for a
// transient database.
func OpenSQLite(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path)
}

// SQLSink writes a result set into a table through database/sql, inside a
// single transaction. The table is created when missing.
type SQLSink struct {
	DB      *sql.DB
	Table   string
	Dialect Dialect
	// Replace drops the table first.
	Replace bool
}

func (s *SQLSink) Export(ctx context.Context, rs *cmap.ResultSet) (err error) {
	if s.Table == "" {
		return fmt.Errorf("export: table name is empty")
	}
	if rs.NumColumns() == 0 {
		return fmt.Errorf("export: result set has no columns")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	table := quoteIdent(s.Table)
	if s.Replace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, createTable(table, rs.Schema, s.Dialect.Types)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, insertInto(table, rs.Columns(), s.Dialect.Placeholder))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, rs.NumColumns())
	for i := 0; i < rs.NumRows(); i++ {
		for j, v := range rs.Row(i) {
			args[j] = s.bind(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLSink) bind(v cmap.Value) any {
	if t, ok := v.(time.Time); ok && s.Dialect.Timestamp != nil {
		return s.Dialect.Timestamp(t)
	}
	return v
}

func createTable(table string, schema cmap.Schema, types map[cmap.DataType]string) string {
	cols := make([]string, 0, len(schema))
	for _, f := range schema {
		typ, ok := types[f.Type]
		if !ok {
			typ = types[cmap.StringDataType]
		}
		cols = append(cols, quoteIdent(f.Name)+" "+typ)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", "))
}

func insertInto(table string, columns []string, placeholder func(int) string) string {
	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quoteIdent(c)
		marks[i] = placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(marks, ", "))
}

// quoteIdent double-quotes an identifier; dotted names are quoted part by part.
func quoteIdent(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
