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
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Value stores the contents of a single cell from a CMAP result.
//
// The dynamic type follows the column DataType: string, int64, float64, bool
// or time.Time. Empty cells are nil.
type Value any

// ResultSet stores a table returned by the CMAP server.
type ResultSet struct {
	// RequestID is the X-Request-Id sent with the request.
	RequestID string
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Schema is the schema of the result set.
	Schema Schema

	rows [][]Value
}

// Schema describes the fields in a table or query result.
type Schema []*FieldSchema

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// FieldSchema describes a single field.
type FieldSchema struct {
	// Name is the field name.
	Name string
	// Type is the field data type.
	Type DataType
}

// DataType is the type of field.
type DataType string

const (
	// StringDataType is a string data type.
	StringDataType DataType = "string"
	// IntDataType is an int data type.
	IntDataType DataType = "int"
	// FloatDataType is a float data type.
	FloatDataType DataType = "float"
	// BooleanDataType is a bool data type.
	BooleanDataType DataType = "boolean"
	// TimestampDataType is a timestamp data type.
	TimestampDataType DataType = "timestamp"
)

// NewResultSet builds a result set from column names and rows of cells.
// Each row must have as many cells as there are columns.
func NewResultSet(schema Schema, rows [][]Value) (*ResultSet, error) {
	for i, r := range rows {
		if len(r) != len(schema) {
			return nil, fmt.Errorf("row %d has %d values, schema has %d fields", i, len(r), len(schema))
		}
	}
	return &ResultSet{Schema: schema, rows: rows}, nil
}

// NumRows returns the number of rows.
func (rs *ResultSet) NumRows() int {
	if rs == nil {
		return 0
	}
	return len(rs.rows)
}

// NumColumns returns the number of columns.
func (rs *ResultSet) NumColumns() int {
	if rs == nil {
		return 0
	}
	return len(rs.Schema)
}

// Columns returns the column names.
func (rs *ResultSet) Columns() []string {
	return rs.Schema.Names()
}

// ColumnIndex returns the position of the named column, or -1.
func (rs *ResultSet) ColumnIndex(name string) int {
	for i, f := range rs.Schema {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Row returns the i-th row. The returned slice must not be modified.
func (rs *ResultSet) Row(i int) []Value {
	return rs.rows[i]
}

// ToValues returns the rows as a 2D array of values, i.e., rows of value lists.
func (rs *ResultSet) ToValues() [][]Value {
	values := make([][]Value, 0, len(rs.rows))
	for _, r := range rs.rows {
		values = append(values, append([]Value(nil), r...))
	}
	return values
}

// Value returns the cell at the given row and column.
func (rs *ResultSet) Value(row int, column string) (Value, error) {
	if row < 0 || row >= len(rs.rows) {
		return nil, fmt.Errorf("row %d out of range [0, %d)", row, len(rs.rows))
	}
	idx := rs.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("no column %q in result set", column)
	}
	return rs.rows[row][idx], nil
}

// Float64 returns the cell at the given row and column as a float64.
func (rs *ResultSet) Float64(row int, column string) (float64, error) {
	v, err := rs.Value(row, column)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("column %q: expected number, got %T", column, v)
	}
}

// Int64 returns the cell at the given row and column as an int64.
func (rs *ResultSet) Int64(row int, column string) (int64, error) {
	v, err := rs.Value(row, column)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("column %q: %v is not an integer", column, n)
		}
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("column %q: expected integer, got %T", column, v)
	}
}

// Text returns the cell at the given row and column formatted as text.
// Empty cells are returned as "".
func (rs *ResultSet) Text(row int, column string) (string, error) {
	v, err := rs.Value(row, column)
	if err != nil {
		return "", err
	}
	return FormatValue(v), nil
}

// Time returns the cell at the given row and column as a time.Time.
func (rs *ResultSet) Time(row int, column string) (time.Time, error) {
	v, err := rs.Value(row, column)
	if err != nil {
		return time.Time{}, err
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if ts, ok := parseTimestamp(t); ok {
			return ts, nil
		}
		return time.Time{}, fmt.Errorf("column %q: cannot parse %q as timestamp", column, t)
	default:
		return time.Time{}, fmt.Errorf("column %q: expected timestamp, got %T", column, v)
	}
}

// DropColumns returns a copy of the result set without the named columns.
// Unknown names are ignored.
func (rs *ResultSet) DropColumns(names ...string) *ResultSet {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	var keep []int
	var schema Schema
	for i, f := range rs.Schema {
		if !drop[f.Name] {
			keep = append(keep, i)
			schema = append(schema, f)
		}
	}

	rows := make([][]Value, 0, len(rs.rows))
	for _, r := range rs.rows {
		row := make([]Value, 0, len(keep))
		for _, i := range keep {
			row = append(row, r[i])
		}
		rows = append(rows, row)
	}
	return &ResultSet{RequestID: rs.RequestID, StatusCode: rs.StatusCode, Schema: schema, rows: rows}
}

// JoinColumns places other's columns to the right of rs's columns, row by row.
// The shorter side is padded with empty cells.
func (rs *ResultSet) JoinColumns(other *ResultSet) *ResultSet {
	schema := append(append(Schema(nil), rs.Schema...), other.Schema...)
	n := max(rs.NumRows(), other.NumRows())
	rows := make([][]Value, 0, n)
	for i := 0; i < n; i++ {
		row := make([]Value, 0, len(schema))
		if i < rs.NumRows() {
			row = append(row, rs.rows[i]...)
		} else {
			row = append(row, make([]Value, len(rs.Schema))...)
		}
		if i < other.NumRows() {
			row = append(row, other.rows[i]...)
		} else {
			row = append(row, make([]Value, len(other.Schema))...)
		}
		rows = append(rows, row)
	}
	return &ResultSet{RequestID: rs.RequestID, StatusCode: rs.StatusCode, Schema: schema, rows: rows}
}

// Render writes the result set as a text table.
func (rs *ResultSet) Render(w io.Writer) error {
	header := make(table.Row, 0, len(rs.Schema))
	for _, f := range rs.Schema {
		header = append(header, f.Name)
	}

	t := table.NewWriter()
	t.AppendHeader(header)
	for _, r := range rs.rows {
		row := make(table.Row, 0, len(r))
		for _, v := range r {
			row = append(row, FormatValue(v))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// FormatValue renders a cell as text. Empty cells render as "", floats in
// the shortest form without exponent and timestamps as RFC 3339.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"
)

// parseResultSet reads a response body as a table. Bodies declared as JSON
// are read as an array of row objects; everything else as delimited text with
// a header row.
func parseResultSet(contentType string, body []byte) (*ResultSet, error) {
	body = bytes.TrimRight(body, "\r\n")
	if len(bytes.TrimSpace(body)) == 0 {
		return &ResultSet{}, nil
	}

	var (
		names []string
		cells [][]*string
		err   error
	)
	if strings.HasPrefix(strings.ToLower(contentType), contentTypeJSON) {
		names, cells, err = parseJSONRows(body)
	} else {
		names, cells, err = parseCSVRows(body)
	}
	if err != nil {
		if contentType == "" {
			contentType = contentTypeCSV
		}
		return nil, &ParseError{ContentType: contentType, Err: err}
	}
	return inferResultSet(names, cells)
}

func parseCSVRows(body []byte) ([]string, [][]*string, error) {
	r := csv.NewReader(bytes.NewReader(body))
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("missing header row")
	}

	cells := make([][]*string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]*string, len(rec))
		for i := range rec {
			if rec[i] != "" {
				row[i] = &rec[i]
			}
		}
		cells = append(cells, row)
	}
	return records[0], cells, nil
}

func parseJSONRows(body []byte) ([]string, [][]*string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, nil, err
	}

	var names []string
	index := make(map[string]int)
	var objects []map[string]*string
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, nil, err
		}
		obj := make(map[string]*string)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("expected object key, got %v", tok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, nil, err
			}
			cell, err := jsonCell(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("field %q: %w", key, err)
			}
			if _, seen := index[key]; !seen {
				index[key] = len(names)
				names = append(names, key)
			}
			obj[key] = cell
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, nil, err
		}
		objects = append(objects, obj)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, nil, err
	}

	cells := make([][]*string, 0, len(objects))
	for _, obj := range objects {
		row := make([]*string, len(names))
		for k, v := range obj {
			row[index[k]] = v
		}
		cells = append(cells, row)
	}
	return names, cells, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func jsonCell(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	var s string
	switch trimmed[0] {
	case '"':
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
	default:
		// numbers, booleans and nested values keep their JSON text
		s = string(trimmed)
	}
	return &s, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// decimalNumber matches plain decimal numbers. Leading zeros, explicit plus
// signs, hex floats, NaN and Inf stay text.
var decimalNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// inferDataType picks the narrowest type that every non-empty cell of a
// column parses as without changing its text.
func inferDataType(column []*string) DataType {
	isInt, isFloat, isBool, isTime := true, true, true, true
	seen := false
	for _, c := range column {
		if c == nil {
			continue
		}
		seen = true
		v := *c
		if isInt {
			if n, err := strconv.ParseInt(v, 10, 64); err != nil || strconv.FormatInt(n, 10) != v {
				isInt = false
			}
		}
		if isFloat {
			if !decimalNumber.MatchString(v) {
				isFloat = false
			} else if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, ok := parseBool(v); !ok {
				isBool = false
			}
		}
		if isTime {
			if _, ok := parseTimestamp(v); !ok {
				isTime = false
			}
		}
	}

	switch {
	case !seen:
		return StringDataType
	case isInt:
		return IntDataType
	case isFloat:
		return FloatDataType
	case isBool:
		return BooleanDataType
	case isTime:
		return TimestampDataType
	default:
		return StringDataType
	}
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func inferResultSet(names []string, cells [][]*string) (*ResultSet, error) {
	schema := make(Schema, 0, len(names))
	for i, name := range names {
		column := make([]*string, 0, len(cells))
		for _, row := range cells {
			column = append(column, row[i])
		}
		schema = append(schema, &FieldSchema{Name: name, Type: inferDataType(column)})
	}

	convertValue := func(v string, typ DataType) (Value, error) {
		switch typ {
		case StringDataType:
			return v, nil
		case IntDataType:
			return strconv.ParseInt(v, 10, 64)
		case FloatDataType:
			return strconv.ParseFloat(v, 64)
		case BooleanDataType:
			b, _ := parseBool(v)
			return b, nil
		case TimestampDataType:
			t, _ := parseTimestamp(v)
			return t, nil
		default:
			return nil, fmt.Errorf("unrecognized type: %s", typ)
		}
	}

	rows := make([][]Value, 0, len(cells))
	for _, r := range cells {
		if len(r) != len(schema) {
			return nil, errors.New("schema length does not match record length")
		}
		values := make([]Value, 0, len(r))
		for i, v := range r {
			if v == nil {
				values = append(values, nil)
				continue
			}
			val, err := convertValue(*v, schema[i].Type)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		rows = append(rows, values)
	}
	return &ResultSet{Schema: schema, rows: rows}, nil
}
