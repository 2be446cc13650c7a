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
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ArrowSchema returns the Arrow schema matching the result set schema.
// All fields are nullable.
func (rs *ResultSet) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, 0, len(rs.Schema))
	for _, f := range rs.Schema {
		fields = append(fields, arrow.Field{Name: f.Name, Type: arrowType(f.Type), Nullable: true})
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t DataType) arrow.DataType {
	switch t {
	case IntDataType:
		return arrow.PrimitiveTypes.Int64
	case FloatDataType:
		return arrow.PrimitiveTypes.Float64
	case BooleanDataType:
		return arrow.FixedWidthTypes.Boolean
	case TimestampDataType:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

// ToArrowBatch converts the result set into a single Arrow record.
//
// The caller owns the returned record and must call Release on it.
func (rs *ResultSet) ToArrowBatch(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	b := array.NewRecordBuilder(mem, rs.ArrowSchema())
	defer b.Release()

	for _, row := range rs.rows {
		for i, v := range row {
			if err := appendArrowValue(b.Field(i), v); err != nil {
				return nil, fmt.Errorf("field %q: %w", rs.Schema[i].Name, err)
			}
		}
	}
	return b.NewRecord(), nil
}

func appendArrowValue(fb array.Builder, v Value) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}

	switch fb := fb.(type) {
	case *array.Int64Builder:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", v)
		}
		fb.Append(n)
	case *array.Float64Builder:
		switch n := v.(type) {
		case float64:
			fb.Append(n)
		case int64:
			fb.Append(float64(n))
		default:
			return fmt.Errorf("expected float64, got %T", v)
		}
	case *array.BooleanBuilder:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		fb.Append(b)
	case *array.TimestampBuilder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		fb.Append(arrow.Timestamp(t.UnixMicro()))
	case *array.StringBuilder:
		fb.Append(FormatValue(v))
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	return nil
}
