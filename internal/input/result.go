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

	"m4o.io/mapval/model"
)

// Result is the content of a file produced by the map generator.
type Result struct {
	// RefPoint is the reference point of the junction, when the file has one.
	RefPoint *model.Coordinate

	// Connections holds one connection per egress of every ingress, in file
	// order.
	Connections []model.Connection

	// Sizes holds the vertex counts, before simplification, of the paths of
	// each connection.
	Sizes []Size
}

// Size is the number of vertices of the raw paths of a connection.
type Size struct {
	Ingress int `json:"ingress"`
	Egress  int `json:"egress"`
}

type latLon struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// point is either {"latitude", "longitude"} or {"position": {...}}.
type point struct {
	latLon
	Position *latLon `json:"position"`
}

func (p point) coordinate() (model.Coordinate, error) {
	ll := p.latLon
	if p.Position != nil {
		ll = *p.Position
	}

	if ll.Latitude == nil || ll.Longitude == nil {
		return model.Coordinate{}, errors.New("missing latitude or longitude")
	}

	return checked(model.NewCoordinate(*ll.Latitude, *ll.Longitude))
}

// egress is either an array of points or {"points": [...]}.
type egress []point

func (e *egress) UnmarshalJSON(b []byte) error {
	if b = bytes.TrimSpace(b); len(b) > 0 && b[0] == '{' {
		var obj struct {
			Points []point `json:"points"`
		}

		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}

		*e = obj.Points

		return nil
	}

	return json.Unmarshal(b, (*[]point)(e))
}

type ingress struct {
	Points   []point  `json:"points"`
	Egresses []egress `json:"egresses"`
}

type resultFile struct {
	RefPoint  *point    `json:"ref_point"`
	Ingresses []ingress `json:"ingresses"`
}

// ParseResult reads a generated map: every ingress with the egresses
// reachable from it.
func ParseResult(r io.Reader) (*Result, error) {
	var f resultFile

	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	if f.Ingresses == nil {
		return nil, malformed(`missing "ingresses"`)
	}

	res := &Result{Connections: []model.Connection{}, Sizes: []Size{}}

	if f.RefPoint != nil {
		c, err := f.RefPoint.coordinate()
		if err != nil {
			return nil, malformed("ref_point: %v", err)
		}

		res.RefPoint = &c
	}

	for i, in := range f.Ingresses {
		if in.Egresses == nil {
			return nil, malformed(`ingress %d: missing "egresses"`, i)
		}

		ingressCoords, err := points(in.Points)
		if err != nil {
			return nil, malformed("ingress %d: %v", i, err)
		}

		for j, out := range in.Egresses {
			egressCoords, err := points(out)
			if err != nil {
				return nil, malformed("ingress %d egress %d: %v", i, j, err)
			}

			res.Connections = append(res.Connections, model.NewConnection(ingressCoords, egressCoords))
			res.Sizes = append(res.Sizes, Size{Ingress: len(ingressCoords), Egress: len(egressCoords)})
		}
	}

	return res, nil
}

func points(ps []point) ([]model.Coordinate, error) {
	if len(ps) == 0 {
		return nil, errors.New("no points")
	}

	cs := make([]model.Coordinate, len(ps))

	for i, p := range ps {
		c, err := p.coordinate()
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}

		cs[i] = c
	}

	return cs, nil
}

func checked(c model.Coordinate) (model.Coordinate, error) {
	if !c.Valid() {
		return model.Coordinate{}, fmt.Errorf("coordinate %s out of range", c)
	}

	return c, nil
}
