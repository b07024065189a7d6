// Copyright 2017-25 the original author or authors.
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
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s1"
	"golang.org/x/exp/constraints"
)

// Degrees is the decimal degree representation of a longitude, latitude or
// heading.
type Degrees float64

// Angle represents a 1D angle in radians.
type Angle s1.Angle

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

// Degrees units.
const (
	Degree           Degrees = 1
	radiansPerPi             = 180
	Radian                   = (radiansPerPi / math.Pi) * Degree
	MinutesPerDegree         = 60
	SecondsPerDegree         = 3600

	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7

	Half = 0.5
)

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

// Radians returns the angle in radians.
func (d Degrees) Radians() float64 { return s1.Angle(d.Angle()).Radians() }

// Degrees converts the angle back into Degrees.
func (a Angle) Degrees() Degrees { return Degrees(s1.Angle(a).Degrees()) }

// String formats d as degrees, minutes and seconds, the seconds rounded to
// two decimals.
func (d Degrees) String() string {
	var sign string
	if d < 0 {
		sign = "-"
	} else {
		sign = ""
	}

	val := math.Abs(float64(d))
	degrees := int(math.Floor(val))
	minutes := int(math.Floor(MinutesPerDegree * (val - float64(degrees))))
	seconds := SecondsPerDegree * (val - float64(degrees) - (float64(minutes) / MinutesPerDegree))

	return fmt.Sprintf("%s%d° %d' %s\"", sign, degrees, minutes, ftoa(round2(seconds)))
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return equalWithin(d, o, Degrees(eps))
}

// EqualWithin checks if two angles are within a specific epsilon.
func (a Angle) EqualWithin(o Angle, eps Epsilon) bool {
	return equalWithin(a, o, Angle(eps))
}

func equalWithin[T constraints.Float](a, b, eps T) bool {
	return abs(a-b) < eps
}

func abs[T constraints.Float](v T) T {
	if v < 0 {
		return -v
	}

	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
