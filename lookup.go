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

import "strings"

// expectOne enforces that a name lookup matched exactly one row.
//
// On more than one match the conflicting rows are written to the logger,
// without the bulky Keywords column, and returned inside the error.
func (c *Client) expectOne(kind, name string, rs *ResultSet) error {
	switch n := rs.NumRows(); {
	case n < 1:
		return &InvalidNameError{Kind: kind, Name: name}
	case n > 1:
		matches := rs.DropColumns("Keywords")
		var b strings.Builder
		if err := matches.Render(&b); err != nil {
			b.WriteString(strings.Join(matches.Columns(), ", "))
		}
		c.logger.Warn("more than one "+kind+" matches the name", c.logger.Args(
			"name", name,
			"matches", n,
			"rows", "\n"+b.String(),
		))
		return &AmbiguousNameError{Kind: kind, Name: name, Matches: matches}
	default:
		return nil
	}
}
