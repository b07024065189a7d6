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

// Package output writes the artifacts of a validation run: the compared
// connections, a KML document for visual inspection and a Markdown report.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/twpayne/go-polyline"

	"m4o.io/mapval/internal/codec"
	"m4o.io/mapval/model"
)

const (
	jsonExt = ".json"

	// ResultName and ExpectedName are the base names of the connection
	// files written for the two inputs.
	ResultName   = "result"
	ExpectedName = "expected"
)

// ErrInputInOutDir is returned by PrepareDir when one of the inputs is a
// file that would be cleared.
var ErrInputInOutDir = errors.New("input file is an artifact of the out directory")

// PrepareDir creates dir, or removes the artifacts of a previous run from it
// when it already exists. Files this package does not write are left alone.
// Clearing is refused when any of inputs is one of those artifacts.
func PrepareDir(dir string, inputs ...string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	} else if err != nil {
		return fmt.Errorf("cannot prepare %s: %w", dir, err)
	}

	var stale []string

	for _, e := range entries {
		if e.Type().IsRegular() && isArtifact(e.Name()) {
			stale = append(stale, filepath.Join(dir, e.Name()))
		}
	}

	for _, in := range inputs {
		fi, err := os.Stat(in)
		if err != nil {
			continue
		}

		for _, path := range stale {
			if si, err := os.Stat(path); err == nil && os.SameFile(fi, si) {
				return fmt.Errorf("cannot prepare %s: %w: %s", dir, ErrInputInOutDir, in)
			}
		}
	}

	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("cannot prepare %s: %w", dir, err)
		}

		slog.Debug("stale artifact removed", "path", path)
	}

	return nil
}

// isArtifact reports whether name is a file written by SaveConnections,
// SaveKML or SaveMarkdown.
func isArtifact(name string) bool {
	switch name {
	case kmlName, markdownName:
		return true
	}

	for _, base := range []string{ResultName, ExpectedName} {
		base += jsonExt
		if name == base || name == base+codec.FromPath(name).Extension() {
			return true
		}
	}

	return false
}

// WriteConnections writes the simplified connections as a JSON array
// indented by two spaces.
func WriteConnections(w io.Writer, connections []model.Connection) error {
	if connections == nil {
		connections = []model.Connection{}
	}

	b, err := json.MarshalIndent(connections, "", "  ")
	if err != nil {
		return err
	}

	if _, err = w.Write(append(b, '\n')); err != nil {
		return err
	}

	return nil
}

// SaveConnections writes connections into dir/name.json, compressed with c,
// and returns the path of the file written. The extension of c is appended
// to the file name.
func SaveConnections(dir, name string, connections []model.Connection, c codec.Compression) (string, error) {
	if !strings.HasSuffix(name, jsonExt) {
		name += jsonExt
	}

	path := filepath.Join(dir, name+c.Extension())

	err := create(path, c, func(w io.Writer) error {
		return WriteConnections(w, connections)
	})
	if err != nil {
		return "", err
	}

	slog.Debug("connections saved", "path", path, "connections", len(connections))

	return path, nil
}

// create writes the file at path through a c compressor.
func create(path string, c codec.Compression, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	cw, err := codec.NewWriter(f, c)
	if err != nil {
		return err
	}

	if err = write(cw); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	return cw.Close()
}

// Polyline encodes the vertices of p with the polyline algorithm.
func Polyline(p model.Path) string {
	cs := p.Coordinates()
	coords := make([][]float64, len(cs))

	for i, c := range cs {
		coords[i] = []float64{float64(c.Lat), float64(c.Lon)}
	}

	return string(polyline.EncodeCoords(coords))
}
