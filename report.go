// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mapval

import (
	"fmt"
	"log/slog"
)

// Mapping records that an actual connection matched an expected one.
type Mapping struct {
	Actual   int `json:"actual"`
	Expected int `json:"expected"`
}

// Report summarizes how a set of actual connections reconciles with the
// expected ones.
type Report struct {
	// NumberOfConnections is the number of expected connections.
	NumberOfConnections int `json:"connections"`

	// NumberOfMatches is the number of distinct expected connections that
	// were claimed by at least one actual connection.
	NumberOfMatches int `json:"matches"`

	// NumberOfDuplicates counts the claims beyond the first on each expected
	// connection.
	NumberOfDuplicates int `json:"duplicates"`

	// NumberOfActual is the number of actual connections.
	NumberOfActual int `json:"actual"`

	// UnmatchedActual is the number of actual connections that matched no
	// expected connection.
	UnmatchedActual int `json:"unmatched"`

	// Mappings lists every successful claim in actual order.
	Mappings []Mapping `json:"mappings"`

	// UnclaimedExpected lists, in order, the expected connections that no
	// actual connection matched.
	UnclaimedExpected []int `json:"unclaimed_expected"`
}

func newReport(numExpected int, found []Mapping) *Report {
	r := &Report{
		NumberOfConnections: numExpected,
		NumberOfActual:      len(found),
		Mappings:            []Mapping{},
		UnclaimedExpected:   []int{},
	}

	claimed := make([]bool, numExpected)

	for _, m := range found {
		if m.Expected == unmatched {
			continue
		}

		r.Mappings = append(r.Mappings, m)

		if claimed[m.Expected] {
			slog.Debug("duplicate claim", "actual", m.Actual, "expected", m.Expected)
			r.NumberOfDuplicates++

			continue
		}

		claimed[m.Expected] = true
		r.NumberOfMatches++
	}

	for j, c := range claimed {
		if !c {
			r.UnclaimedExpected = append(r.UnclaimedExpected, j)
		}
	}

	r.UnmatchedActual = r.NumberOfActual - len(r.Mappings)

	return r
}

func (r *Report) String() string {
	return fmt.Sprintf("Connections: %d\nMatches: %d\nDuplicates: %d",
		r.NumberOfConnections, r.NumberOfMatches, r.NumberOfDuplicates)
}
