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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/twpayne/go-polyline"

	"m4o.io/mapval/model"
)

// path is either an array of [lat, lon] pairs or an encoded polyline.
type path []model.Coordinate

func (p *path) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		cs, err := decodePolyline(s)
		if err != nil {
			return err
		}

		*p = cs

		return nil
	default:
		return json.Unmarshal(b, (*[]model.Coordinate)(p))
	}
}

func decodePolyline(s string) ([]model.Coordinate, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("invalid polyline: %w", err)
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("invalid polyline: %d trailing bytes", len(rest))
	}

	cs := make([]model.Coordinate, len(coords))
	for i, c := range coords {
		cs[i] = model.NewCoordinate(c[0], c[1])
	}

	return cs, nil
}

type expectedConnection struct {
	Ingress path `json:"ingress"`
	Egress  path `json:"egress"`
}

type expectedFile struct {
	Expected []expectedConnection `json:"expected"`
}

// ParseExpected reads the hand-curated list of expected connections.
func ParseExpected(r io.Reader) ([]model.Connection, error) {
	var f expectedFile

	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	if f.Expected == nil {
		return nil, malformed(`missing "expected"`)
	}

	connections := make([]model.Connection, len(f.Expected))

	for i, e := range f.Expected {
		if err := validate(e.Ingress); err != nil {
			return nil, malformed("expected %d ingress: %v", i, err)
		}

		if err := validate(e.Egress); err != nil {
			return nil, malformed("expected %d egress: %v", i, err)
		}

		connections[i] = model.NewConnection(e.Ingress, e.Egress)
	}

	return connections, nil
}

func validate(p path) error {
	if len(p) == 0 {
		return errors.New("no points")
	}

	for i, c := range p {
		if _, err := checked(c); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}

	return nil
}
