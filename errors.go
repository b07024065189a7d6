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
	"errors"
	"fmt"
)

// ErrInvalidTolerance is returned by Match when the configured tolerance is
// not a positive distance.
var ErrInvalidTolerance = errors.New("tolerance must be greater than zero")

// MatchError reports the pair of connections whose comparison failed.
type MatchError struct {
	Actual   int
	Expected int
	Err      error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("comparing expected connection %d with actual connection %d: %v",
		e.Expected, e.Actual, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}
