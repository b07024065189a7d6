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
	"encoding/json"
	"slices"
	"strconv"
)

// MaxHeadingDiff is the largest change of direction, in degrees, that is
// still treated as a straight continuation while simplifying a path.
const MaxHeadingDiff Degrees = 2.0

// Direction selects the vertex a path is anchored on when it is resampled.
type Direction int8

const (
	// Forward anchors on the first vertex. Egress paths are Forward.
	Forward Direction = iota

	// Reversed anchors on the last vertex, the merge point of a ramp.
	// Ingress paths are Reversed.
	Reversed
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "Forward"
	case Reversed:
		return "Reversed"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// PathKind names the kind of path travelling in this direction.
func (d Direction) PathKind() string {
	if d == Reversed {
		return "ingress"
	}

	return "egress"
}

// Path is an ordered, simplified sequence of coordinates. The raw input is
// discarded once the path is built; a Path is immutable afterwards.
type Path struct {
	coordinates []Coordinate
	direction   Direction
}

// NewIngress builds a Reversed path from raw coordinates.
func NewIngress(raw []Coordinate) Path {
	return NewPath(raw, Reversed)
}

// NewEgress builds a Forward path from raw coordinates.
func NewEgress(raw []Coordinate) Path {
	return NewPath(raw, Forward)
}

// NewPath simplifies raw and returns the resulting path.
func NewPath(raw []Coordinate, direction Direction) Path {
	return Path{
		coordinates: Simplify(raw),
		direction:   direction,
	}
}

// Simplify reduces raw to the vertices where the direction of travel changes
// by more than MaxHeadingDiff. The first and last coordinates are always
// kept. Fewer than two coordinates are returned as they are.
func Simplify(raw []Coordinate) []Coordinate {
	if len(raw) < 2 {
		return slices.Clone(raw)
	}

	headings := make([]Degrees, len(raw)-1)
	for i := range headings {
		headings[i] = raw[i].Heading(raw[i+1])
	}

	simplified := []Coordinate{raw[0]}

	for i := 0; i < len(headings); {
		j := i + 1

		for ; j < len(headings); j++ {
			if abs(headings[i]-headings[j]) > MaxHeadingDiff {
				simplified = append(simplified, raw[j])

				break
			}
		}

		i = j
	}

	last := raw[len(raw)-1]
	if simplified[len(simplified)-1] != last {
		simplified = append(simplified, last)
	}

	return simplified
}

// Direction returns the resampling direction of the path.
func (p Path) Direction() Direction {
	return p.direction
}

// Len returns the number of simplified vertices.
func (p Path) Len() int {
	return len(p.coordinates)
}

// Coordinates returns a copy of the simplified vertices.
func (p Path) Coordinates() []Coordinate {
	return slices.Clone(p.coordinates)
}

// Segments returns the distances in kilometers between consecutive vertices.
func (p Path) Segments() []float64 {
	if len(p.coordinates) < 2 {
		return nil
	}

	segments := make([]float64, len(p.coordinates)-1)
	for i := 1; i < len(p.coordinates); i++ {
		segments[i-1] = p.coordinates[i-1].Distance(p.coordinates[i])
	}

	return segments
}

// Length returns the length of the path in kilometers.
func (p Path) Length() float64 {
	var l float64

	for _, s := range p.Segments() {
		l += s
	}

	return l
}

// BoundingBox returns the smallest box holding every vertex of the path.
func (p Path) BoundingBox() *BoundingBox {
	bbox := InitialBoundingBox()

	for _, c := range p.coordinates {
		bbox.ExpandWithCoordinate(c)
	}

	return bbox
}

// Resample regenerates the path as len(distances)+1 points spaced by
// distances along the heading of its single segment. The first point of a
// Forward path and the last point of a Reversed path are the path's own
// anchor vertex. Only paths with exactly two vertices can be resampled.
func (p Path) Resample(distances []float64) ([]Coordinate, error) {
	if len(p.coordinates) != 2 {
		return nil, p.resampleError()
	}

	if p.direction == Reversed {
		adjusted := resample(p.coordinates[1], p.coordinates[0], reversed(distances))
		slices.Reverse(adjusted)

		return adjusted, nil
	}

	return resample(p.coordinates[0], p.coordinates[1], distances), nil
}

func resample(anchor, toward Coordinate, distances []float64) []Coordinate {
	heading := anchor.Heading(toward)

	adjusted := make([]Coordinate, 1, len(distances)+1)
	adjusted[0] = anchor

	for _, d := range distances {
		adjusted = append(adjusted, adjusted[len(adjusted)-1].ProjectAt(d, heading))
	}

	return adjusted
}

func reversed[T any](s []T) []T {
	r := slices.Clone(s)
	slices.Reverse(r)

	return r
}

func (p Path) resampleError() error {
	err := &ResampleError{Direction: p.direction, Points: len(p.coordinates)}

	if len(p.coordinates) > 0 {
		err.First = p.coordinates[0]
		err.Last = p.coordinates[len(p.coordinates)-1]
	}

	return err
}

// Comparison is the outcome of comparing two paths.
type Comparison struct {
	// Match is true when every compared pair of points is within tolerance.
	Match bool

	// Compared is the number of point pairs that were checked.
	Compared int

	// Index is the position of the first pair out of tolerance, or -1.
	Index int

	// Distance is the distance in kilometers of the failing pair or, on a
	// match, the largest distance among the compared pairs.
	Distance float64
}

// Compare resamples p onto the segment lengths of other and checks the
// resulting points pairwise against other's vertices using Tolerance.
// The comparison is asymmetric: p is the path that gets resampled.
func (p Path) Compare(other Path) (Comparison, error) {
	return p.CompareWithin(other, Tolerance)
}

// CompareWithin is Compare with an explicit tolerance in kilometers.
//
// Only the overlapping prefix of the resampled points and other's vertices
// is checked; a difference in length is not an error.
func (p Path) CompareWithin(other Path, tolerance float64) (Comparison, error) {
	adjusted, err := p.Resample(other.Segments())
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{Match: true, Index: -1}

	n := min(len(adjusted), len(other.coordinates))
	for i := 0; i < n; i++ {
		d := adjusted[i].Distance(other.coordinates[i])
		cmp.Compared++

		if !withinTolerance(d, tolerance) {
			cmp.Match = false
			cmp.Index = i
			cmp.Distance = d

			return cmp, nil
		}

		cmp.Distance = max(cmp.Distance, d)
	}

	return cmp, nil
}

func (p Path) String() string {
	b, _ := json.Marshal(p.coordinates)

	return p.direction.PathKind() + string(b)
}

// MarshalJSON encodes the path as an array of [lat, lon] arrays.
func (p Path) MarshalJSON() ([]byte, error) {
	if p.coordinates == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(p.coordinates)
}
