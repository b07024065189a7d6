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

import "fmt"

// Connection is a route through a junction: the ingress path leading onto
// it and the egress path leading away.
type Connection struct {
	Ingress Path `json:"ingress"`
	Egress  Path `json:"egress"`
}

// NewConnection simplifies both raw coordinate lists into a Connection.
func NewConnection(ingress, egress []Coordinate) Connection {
	return Connection{
		Ingress: NewIngress(ingress),
		Egress:  NewEgress(egress),
	}
}

// ConnectionComparison is the outcome of comparing two connections. The
// egress comparison is left zero when the ingress did not match.
type ConnectionComparison struct {
	Ingress Comparison
	Egress  Comparison
}

// Match reports whether both paths matched.
func (c ConnectionComparison) Match() bool {
	return c.Ingress.Match && c.Egress.Match
}

// Compare checks c against other path by path using Tolerance.
func (c Connection) Compare(other Connection) (ConnectionComparison, error) {
	return c.CompareWithin(other, Tolerance)
}

// CompareWithin is Compare with an explicit tolerance in kilometers. The
// egress is only compared once the ingress matched.
func (c Connection) CompareWithin(other Connection, tolerance float64) (ConnectionComparison, error) {
	var (
		cmp ConnectionComparison
		err error
	)

	if cmp.Ingress, err = c.Ingress.CompareWithin(other.Ingress, tolerance); err != nil || !cmp.Ingress.Match {
		return cmp, err
	}

	cmp.Egress, err = c.Egress.CompareWithin(other.Egress, tolerance)

	return cmp, err
}

// BoundingBox returns the extent of both paths.
func (c Connection) BoundingBox() *BoundingBox {
	bbox := c.Ingress.BoundingBox()
	bbox.ExpandWithBoundingBox(c.Egress.BoundingBox())

	return bbox
}

func (c Connection) String() string {
	return fmt.Sprintf("Connection{%s, %s}", c.Ingress, c.Egress)
}
