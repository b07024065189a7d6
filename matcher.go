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

// Package mapval validates the junction connections of a generated road
// network against a hand-curated list of expected connections.
package mapval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/destel/rill"

	"m4o.io/mapval/model"
)

const unmatched = -1

// Match pairs every actual connection with the first expected connection,
// in list order, that compares equal to it. An expected connection may be
// claimed by several actual connections; every claim after the first counts
// as a duplicate.
//
// Expected connections are resampled onto the actual ones, so each of their
// paths must simplify to exactly two vertices. The first comparison error
// aborts the run and is returned as a *MatchError.
func Match(ctx context.Context, actual, expected []model.Connection, opts ...MatchOption) (*Report, error) {
	cfg := defaultMatchConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if !(cfg.tolerance > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTolerance, cfg.tolerance)
	}

	if cfg.progress == nil {
		cfg.progress = func() {}
	}

	indices := make([]int, len(actual))
	for i := range indices {
		indices[i] = i
	}

	claims := rill.OrderedMap(rill.FromSlice(indices, nil), int(max(cfg.nCPU, 1)), func(i int) (Mapping, error) {
		defer cfg.progress()

		if err := ctx.Err(); err != nil {
			return Mapping{}, err
		}

		return claim(actual[i], i, expected, cfg.tolerance)
	})

	found, err := rill.ToSlice(claims)
	if err != nil {
		return nil, err
	}

	report := newReport(len(expected), found)

	for _, m := range report.Mappings {
		slog.Debug("connection matched", "actual", m.Actual, "expected", m.Expected)
	}

	slog.Info("connections matched",
		"connections", report.NumberOfConnections,
		"matches", report.NumberOfMatches,
		"duplicates", report.NumberOfDuplicates,
		"unmatched", report.UnmatchedActual)

	return report, nil
}

// claim finds the first expected connection matching the actual connection
// at index i.
func claim(actual model.Connection, i int, expected []model.Connection, tolerance float64) (Mapping, error) {
	for j, e := range expected {
		cmp, err := e.CompareWithin(actual, tolerance)
		if err != nil {
			return Mapping{}, &MatchError{Actual: i, Expected: j, Err: err}
		}

		if cmp.Match() {
			return Mapping{Actual: i, Expected: j}, nil
		}
	}

	return Mapping{Actual: i, Expected: unmatched}, nil
}
