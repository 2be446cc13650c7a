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

// Stored procedures behind the space-time accessors.
const (
	ProcSpaceTime    = "uspSpaceTime"
	ProcTimeSeries   = "uspTimeSeries"
	ProcWeekly       = "uspWeekly"
	ProcMonthly      = "uspMonthly"
	ProcQuarterly    = "uspQuarterly"
	ProcAnnual       = "uspAnnual"
	ProcDepthProfile = "uspDepthProfile"
	ProcSection      = "uspSectionMap"
	ProcMatch        = "uspMatch"
)

// IntervalProcedure returns the time series procedure that bins data by the
// given interval. Tokens are case-sensitive; the empty interval means no
// binning.
func IntervalProcedure(interval string) (string, error) {
	switch interval {
	case "":
		return ProcTimeSeries, nil
	case "w", "week", "weekly":
		return ProcWeekly, nil
	case "m", "month", "monthly":
		return ProcMonthly, nil
	case "q", "s", "season", "seasonal", "seasonality", "quarterly":
		return ProcQuarterly, nil
	case "a", "y", "year", "yearly", "annual":
		return ProcAnnual, nil
	default:
		return "", &InvalidIntervalError{Interval: interval}
	}
}

// IsClimatology reports whether the table holds a climatology dataset.
//
// TODO: replace the name heuristic with a lookup once the catalog exposes the
// dataset kind.
func IsClimatology(table string) bool {
	return strings.Contains(table, "_Climatology")
}
