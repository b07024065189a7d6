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

package model

import (
	"errors"
	"fmt"
)

// ErrInvalidResampleState is returned when a path that did not simplify to
// exactly two vertices is asked to resample itself.
var ErrInvalidResampleState = errors.New("resample is only valid for paths with 2 points")

// ResampleError describes the path that could not be resampled.
type ResampleError struct {
	Direction Direction
	Points    int
	First     Coordinate
	Last      Coordinate
}

func (e *ResampleError) Error() string {
	if e.Points == 0 {
		return fmt.Sprintf("%s path is empty: %v", e.Direction.PathKind(), ErrInvalidResampleState)
	}

	return fmt.Sprintf("%s path from %s to %s has %d points: %v",
		e.Direction.PathKind(), e.First, e.Last, e.Points, ErrInvalidResampleState)
}

func (e *ResampleError) Unwrap() error {
	return ErrInvalidResampleState
}
