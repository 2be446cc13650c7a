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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Ident is an identifier (e.g. a table name) bound to a statement placeholder.
// It is rendered in brackets rather than as a string literal.
type Ident string

// Statement is a statement to be executed on CMAP, with "?" placeholders
// bound to arguments.
//
// Arguments are rendered with the server's literal syntax when the statement
// is sent; callers never interpolate values into the text themselves.
type Statement struct {
	text string
	args []any
}

// NewStatement creates a statement. Each "?" in text is bound, in order, to
// one of args. Supported argument types are string, Ident, bool, time.Time,
// and the integer and floating point types.
func NewStatement(text string, args ...any) *Statement {
	return &Statement{text: text, args: args}
}

var procedureName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Exec creates a statement invoking the named stored procedure with args as
// its positional parameters.
func Exec(procedure string, args ...any) *Statement {
	var b strings.Builder
	b.WriteString("EXEC ")
	b.WriteString(procedure)
	for i := range args {
		if i == 0 {
			b.WriteString(" ?")
		} else {
			b.WriteString(", ?")
		}
	}
	return &Statement{text: b.String(), args: args}
}

// Text returns the statement text with placeholders.
func (s *Statement) Text() string {
	return s.text
}

// Args returns the bound arguments.
func (s *Statement) Args() []any {
	return s.args
}

// Render returns the statement text with every placeholder replaced by the
// literal form of its argument.
func (s *Statement) Render() (string, error) {
	if strings.HasPrefix(s.text, "EXEC ") {
		name, _, _ := strings.Cut(strings.TrimPrefix(s.text, "EXEC "), " ")
		if !procedureName.MatchString(name) {
			return "", fmt.Errorf("invalid procedure name: %q", name)
		}
	}

	var b strings.Builder
	next := 0
	inQuote := false
	for _, r := range s.text {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			if next >= len(s.args) {
				return "", fmt.Errorf("statement has more placeholders than the %d arguments bound", len(s.args))
			}
			lit, err := literal(s.args[next])
			if err != nil {
				return "", fmt.Errorf("argument %d: %w", next, err)
			}
			b.WriteString(lit)
			next++
		default:
			b.WriteRune(r)
		}
	}
	if next != len(s.args) {
		return "", fmt.Errorf("statement has %d placeholders but %d arguments bound", next, len(s.args))
	}
	return b.String(), nil
}

// String returns the rendered statement, or the raw text if it cannot be rendered.
func (s *Statement) String() string {
	text, err := s.Render()
	if err != nil {
		return s.text
	}
	return text
}

const timestampLiteralLayout = "2006-01-02T15:04:05"

func literal(arg any) (string, error) {
	switch v := arg.(type) {
	case string:
		return quoteLiteral(v), nil
	case Ident:
		return quoteIdent(string(v)), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	case time.Time:
		return quoteLiteral(v.UTC().Format(timestampLiteralLayout)), nil
	default:
		return "", fmt.Errorf("unsupported argument type %T", arg)
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite number %v", f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// quoteLiteral renders s as a single-quoted string literal.
func quoteLiteral(s string) string {
	var b bytes.Buffer
	b.WriteByte('\'')
	for _, c := range s {
		switch {
		case c == '\'':
			b.WriteString("''")
		case c == 0:
			// NUL is dropped
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// quoteIdent renders s as a bracketed identifier. Dotted names are quoted
// part by part.
func quoteIdent(s string) string {
	var b bytes.Buffer
	for i, part := range strings.Split(s, ".") {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteByte('[')
		b.WriteString(strings.ReplaceAll(part, "]", "]]"))
		b.WriteByte(']')
	}
	return b.String()
}
