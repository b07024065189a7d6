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

// Package model contains the geometry shared by the connection validator:
// coordinates on a spherical earth, directional paths and connections.
package model

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	// EarthRadius is the radius, in kilometers, of the sphere used for all
	// geodesic calculations.
	EarthRadius = 6373.0

	// Tolerance is the great-circle distance, in kilometers, below which two
	// coordinates are considered to be the same location.
	Tolerance = 0.025

	fullCircle = 360
)

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat Degrees
	Lon Degrees
}

// NewCoordinate creates a Coordinate from latitude and longitude values.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: Degrees(lat), Lon: Degrees(lon)}
}

// Valid reports whether the latitude is within [-90, 90] and the longitude
// within [-180, 180].
func (c Coordinate) Valid() bool {
	return MinLat <= c.Lat && c.Lat <= MaxLat && MinLon <= c.Lon && c.Lon <= MaxLon
}

// Distance returns the great-circle distance in kilometers between c and o,
// using the haversine formula.
func (c Coordinate) Distance(o Coordinate) float64 {
	lat1, lon1 := c.Lat.Radians(), c.Lon.Radians()
	lat2, lon2 := o.Lat.Radians(), o.Lon.Radians()

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return EarthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Heading returns the initial bearing from c to o in the range [0, 360).
func (c Coordinate) Heading(o Coordinate) Degrees {
	lat1, lon1 := c.Lat.Radians(), c.Lon.Radians()
	lat2, lon2 := o.Lat.Radians(), o.Lon.Radians()

	y := math.Sin(lon2-lon1) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1)

	bearing := Angle(math.Atan2(y, x)).Degrees()

	return Degrees(math.Mod(float64(bearing)+fullCircle, fullCircle))
}

// ProjectAt solves the direct geodesic problem on the sphere: it returns the
// coordinate reached by travelling distance kilometers from c along heading.
func (c Coordinate) ProjectAt(distance float64, heading Degrees) Coordinate {
	lat1, lon1 := c.Lat.Radians(), c.Lon.Radians()
	dist := distance / EarthRadius
	head := heading.Radians()

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(dist) + math.Cos(lat1)*math.Sin(dist)*math.Cos(head))

	lon2 := lon1 + math.Atan2(math.Sin(head)*math.Sin(dist)*math.Cos(lat1),
		math.Cos(dist)-math.Sin(lat1)*math.Sin(lat2))

	lon2 = math.Mod(lon2+3*math.Pi, 2*math.Pi) - math.Pi

	return Coordinate{
		Lat: Angle(lat2).Degrees(),
		Lon: Angle(lon2).Degrees(),
	}
}

// WithinTolerance reports whether c and o are closer than Tolerance.
func (c Coordinate) WithinTolerance(o Coordinate) bool {
	return withinTolerance(c.Distance(o), Tolerance)
}

// withinTolerance is the single point-level matching rule: the bound is
// exclusive.
func withinTolerance(distance, tolerance float64) bool {
	return distance < tolerance
}

// EqualWithin checks if both latitude and longitude are within eps.
func (c Coordinate) EqualWithin(o Coordinate, eps Epsilon) bool {
	return c.Lat.EqualWithin(o.Lat, eps) && c.Lon.EqualWithin(o.Lon, eps)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%s, %s)", ftoa(float64(c.Lat)), ftoa(float64(c.Lon)))
}

// MarshalJSON encodes the coordinate as a [lat, lon] array.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Degrees{c.Lat, c.Lon})
}

// UnmarshalJSON decodes a [lat, lon] array.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}

	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 elements, got %d", len(pair))
	}

	*c = NewCoordinate(pair[0], pair[1])

	return nil
}
