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

package input

import (
	"errors"
	"fmt"
)

// ErrMalformedInput classifies every failure to read a result or expected
// file, including a missing file.
var ErrMalformedInput = errors.New("malformed input")

// Error is a failure to load the file at Path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrMalformedInput and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
