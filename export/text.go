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
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"math"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

// CSVSink writes comma separated values with a header row.
type CSVSink struct {
	W io.Writer
}

func (s *CSVSink) Export(_ context.Context, rs *cmap.ResultSet) error {
	w := csv.NewWriter(s.W)
	if err := w.Write(rs.Columns()); err != nil {
		return err
	}
	record := make([]string, rs.NumColumns())
	for i := 0; i < rs.NumRows(); i++ {
		for j, v := range rs.Row(i) {
			record[j] = cmap.FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// jsonValue maps non-finite floats, which JSON cannot carry, to null.
func jsonValue(v cmap.Value) cmap.Value {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}

// JSONSink writes an array of row objects, keys in column order.
type JSONSink struct {
	W io.Writer
}

func (s *JSONSink) Export(_ context.Context, rs *cmap.ResultSet) error {
	keys := make([][]byte, 0, rs.NumColumns())
	for _, name := range rs.Columns() {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}

	var b bytes.Buffer
	b.WriteByte('[')
	for i := 0; i < rs.NumRows(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("\n  {")
		for j, v := range rs.Row(i) {
			if j > 0 {
				b.WriteString(", ")
			}
			val, err := json.Marshal(jsonValue(v))
			if err != nil {
				return err
			}
			b.Write(keys[j])
			b.WriteString(": ")
			b.Write(val)
		}
		b.WriteByte('}')
	}
	if rs.NumRows() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString("]\n")

	_, err := s.W.Write(b.Bytes())
	return err
}
