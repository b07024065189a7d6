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

// Package input reads the result produced by the map generator and the
// hand-curated expected connections.
package input

import (
	"io"
	"log/slog"
	"os"

	"m4o.io/mapval/internal/codec"
	"m4o.io/mapval/model"
)

// Stdin is the file name that reads from standard input.
const Stdin = "-"

// Wrapper decorates an opened file, typically with progress reporting.
type Wrapper func(f *os.File) (io.ReadCloser, error)

// loadOptions provides optional configuration parameters for loading files.
type loadOptions struct {
	wrap Wrapper
}

// LoadOption configures how files are loaded.
type LoadOption func(*loadOptions)

// WithWrapper lets you decorate the opened file before it is decompressed.
func WithWrapper(w Wrapper) LoadOption {
	return func(o *loadOptions) {
		o.wrap = w
	}
}

var defaultLoadConfig = loadOptions{
	wrap: func(f *os.File) (io.ReadCloser, error) { return f, nil },
}

// LoadResult reads and parses the result file name. The file is
// decompressed according to its extension.
func LoadResult(name string, opts ...LoadOption) (*Result, error) {
	var res *Result

	err := load(name, opts, func(r io.Reader) (err error) {
		res, err = ParseResult(r)

		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("result loaded", "path", name, "connections", len(res.Connections))

	return res, nil
}

// LoadExpected reads and parses the expected file name. The file is
// decompressed according to its extension.
func LoadExpected(name string, opts ...LoadOption) ([]model.Connection, error) {
	var connections []model.Connection

	err := load(name, opts, func(r io.Reader) (err error) {
		connections, err = ParseExpected(r)

		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("expected loaded", "path", name, "connections", len(connections))

	return connections, nil
}

func load(name string, opts []LoadOption, parse func(io.Reader) error) error {
	cfg := defaultLoadConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	f := os.Stdin
	compression := codec.NONE

	if name != Stdin {
		var err error

		if f, err = os.Open(name); err != nil {
			return &Error{Path: name, Err: err}
		}

		compression = codec.FromPath(name)
	}

	rc, err := cfg.wrap(f)
	if err != nil {
		f.Close()

		return &Error{Path: name, Err: err}
	}
	defer rc.Close()

	dr, err := codec.NewReader(rc, compression)
	if err != nil {
		return &Error{Path: name, Err: err}
	}
	defer dr.Close()

	if err := parse(dr); err != nil {
		return &Error{Path: name, Err: err}
	}

	return nil
}
