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

// Package export writes CMAP result sets to files and databases.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

// Sink receives a result set.
type Sink interface {
	Export(ctx context.Context, rs *cmap.ResultSet) error
}

// Format is a file format a result set can be written in.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatArrow Format = "arrow"
	FormatTable Format = "table"
)

// Formats lists the supported file formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatArrow, FormatTable}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, expected one of %v", s, Formats)
}

// NewWriterSink returns a sink writing the given format to w.
func NewWriterSink(format Format, w io.Writer) (Sink, error) {
	switch format {
	case FormatCSV:
		return &CSVSink{W: w}, nil
	case FormatJSON:
		return &JSONSink{W: w}, nil
	case FormatArrow:
		return &ArrowSink{W: w}, nil
	case FormatTable:
		return &TableSink{W: w}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// TableSink renders a text table.
type TableSink struct {
	W io.Writer
}

func (s *TableSink) Export(_ context.Context, rs *cmap.ResultSet) error {
	return rs.Render(s.W)
}
