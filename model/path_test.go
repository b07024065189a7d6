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

package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mapval/model"
)

func coords(pairs ...[2]float64) []model.Coordinate {
	cs := make([]model.Coordinate, len(pairs))
	for i, p := range pairs {
		cs[i] = model.NewCoordinate(p[0], p[1])
	}

	return cs
}

var (
	// three ramps approaching the same merge point from the north
	p1 = coords([2]float64{47.45636, 19.04640}, [2]float64{47.45609, 19.04631}, [2]float64{47.45557, 19.04611})
	p2 = coords([2]float64{47.45621, 19.04637}, [2]float64{47.45595, 19.04630}, [2]float64{47.45556, 19.04617})
	p3 = coords([2]float64{47.45621, 19.04636}, [2]float64{47.45572, 19.04622}, [2]float64{47.45528, 19.04608})

	// headings 44.96, 45.89, 44.59, 45.23
	straight = coords(
		[2]float64{47.5, 19.0},
		[2]float64{47.500318, 19.00047},
		[2]float64{47.500631, 19.000948},
		[2]float64{47.500951, 19.001415},
		[2]float64{47.501268, 19.001888},
	)

	// headings 44.96, 46.56, 48.01, 49.50
	bending = coords(
		[2]float64{47.5, 19.0},
		[2]float64{47.500318, 19.00047},
		[2]float64{47.500627, 19.000953},
		[2]float64{47.500928, 19.001448},
		[2]float64{47.50122, 19.001954},
	)

	corner = coords(
		[2]float64{0, 0},
		[2]float64{0.001, 0},
		[2]float64{0.002, 0},
		[2]float64{0.002, 0.001},
		[2]float64{0.002, 0.002},
	)
)

func TestSimplify(t *testing.T) {
	test_cases := []struct {
		name     string
		raw      []model.Coordinate
		expected []model.Coordinate
	}{
		{"empty", []model.Coordinate{}, []model.Coordinate{}},
		{"single", p1[:1], p1[:1]},
		{"two", p1[:2], p1[:2]},
		{"p1", p1, []model.Coordinate{p1[0], p1[2]}},
		{"p2", p2, p2},
		{"p3", p3, []model.Coordinate{p3[0], p3[2]}},
		{"straight", straight, []model.Coordinate{straight[0], straight[4]}},
		{"bending", bending, []model.Coordinate{bending[0], bending[2], bending[4]}},
		{"corner", corner, []model.Coordinate{corner[0], corner[2], corner[4]}},
		{
			"repeated last",
			coords([2]float64{0, 0}, [2]float64{0, 0.001}, [2]float64{0, 0.001}),
			coords([2]float64{0, 0}, [2]float64{0, 0.001}),
		},
		{
			"closed",
			coords([2]float64{0, 0}, [2]float64{0.001, 0}, [2]float64{0.001, 0.001}, [2]float64{0, 0}),
			coords([2]float64{0, 0}, [2]float64{0.001, 0}, [2]float64{0.001, 0.001}, [2]float64{0, 0}),
		},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			simplified := model.Simplify(tc.raw)
			assert.Equal(t, tc.expected, simplified)

			if len(tc.raw) > 0 {
				assert.Equal(t, tc.raw[0], simplified[0])
				assert.Equal(t, tc.raw[len(tc.raw)-1], simplified[len(simplified)-1])
			}

			assert.Equal(t, simplified, model.Simplify(simplified))
		})
	}
}

func TestSimplify_DoesNotAlias(t *testing.T) {
	raw := coords([2]float64{1, 1})
	simplified := model.Simplify(raw)
	simplified[0] = model.NewCoordinate(2, 2)

	assert.Equal(t, model.NewCoordinate(1, 1), raw[0])
}

func TestPath_Accessors(t *testing.T) {
	ingress := model.NewIngress(p1)
	egress := model.NewEgress(p2)

	assert.Equal(t, model.Reversed, ingress.Direction())
	assert.Equal(t, model.Forward, egress.Direction())
	assert.Equal(t, 2, ingress.Len())
	assert.Equal(t, 3, egress.Len())

	cs := ingress.Coordinates()
	cs[0] = model.NewCoordinate(0, 0)
	assert.Equal(t, p1[0], ingress.Coordinates()[0])
}

func TestPath_Length(t *testing.T) {
	ingress := model.NewIngress(p1)

	assert.InDelta(t, 0.089, ingress.Length(), 0.002)
	assert.InDelta(t, 0.09053790682477969, ingress.Length(), 1e-9)
	assert.Len(t, ingress.Segments(), 1)

	assert.Zero(t, model.NewIngress(nil).Length())
	assert.Zero(t, model.NewEgress(p1[:1]).Length())
	assert.Nil(t, model.NewEgress(p1[:1]).Segments())
}

func TestPath_BoundingBox(t *testing.T) {
	bbox := model.NewEgress(p2).BoundingBox()

	for _, c := range p2 {
		assert.True(t, bbox.Contains(c))
	}

	assert.Equal(t, model.Degrees(47.45621), bbox.Top)
	assert.Equal(t, model.Degrees(47.45556), bbox.Bottom)
	assert.True(t, model.NewEgress(nil).BoundingBox().IsEmpty())
}

func TestPath_Resample(t *testing.T) {
	distances := []float64{12, 24, 6, 38, 9, 14}

	test_cases := []struct {
		name   string
		path   model.Path
		anchor int
	}{
		{"ingress", model.NewIngress(p1), len(distances)},
		{"egress", model.NewEgress(p1), 0},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			adjusted, err := tc.path.Resample(distances)
			require.NoError(t, err)
			require.Len(t, adjusted, len(distances)+1)

			if tc.path.Direction() == model.Reversed {
				assert.Equal(t, p1[2], adjusted[tc.anchor])
			} else {
				assert.Equal(t, p1[0], adjusted[tc.anchor])
			}

			for i, d := range distances {
				assert.InDelta(t, d, adjusted[i].Distance(adjusted[i+1]), 1e-4)
			}
		})
	}
}

func TestPath_ResampleNoDistances(t *testing.T) {
	adjusted, err := model.NewIngress(p1).Resample(nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Coordinate{p1[2]}, adjusted)

	adjusted, err = model.NewEgress(p1).Resample([]float64{})
	require.NoError(t, err)
	assert.Equal(t, []model.Coordinate{p1[0]}, adjusted)
}

func TestPath_ResampleInvalidState(t *testing.T) {
	test_cases := []struct {
		name   string
		path   model.Path
		points int
		msg    string
	}{
		{"empty", model.NewIngress(nil), 0, "ingress path is empty"},
		{"single", model.NewEgress(p1[:1]), 1, "egress path from (47.45636, 19.0464) to (47.45636, 19.0464) has 1 points"},
		{"three", model.NewIngress(p2), 3, "ingress path from (47.45621, 19.04637) to (47.45556, 19.04617) has 3 points"},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.path.Resample([]float64{0.01})
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidResampleState))
			assert.Contains(t, err.Error(), tc.msg)

			var rerr *model.ResampleError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tc.points, rerr.Points)
			assert.Equal(t, tc.path.Direction(), rerr.Direction)
		})
	}
}

func TestPath_Compare(t *testing.T) {
	test_cases := []struct {
		name     string
		path     model.Path
		other    model.Path
		match    bool
		compared int
		index    int
	}{
		{"ingress self", model.NewIngress(p1), model.NewIngress(p1), true, 2, -1},
		{"ingress close", model.NewIngress(p1), model.NewIngress(p2), true, 3, -1},
		{"ingress apart", model.NewIngress(p1), model.NewIngress(p3), false, 1, 0},
		{"egress close", model.NewEgress(p1), model.NewEgress(p2), true, 3, -1},
		{"egress anchored at start", model.NewEgress(p1), model.NewEgress(p3), true, 2, -1},
		{"empty other", model.NewEgress(p1), model.NewEgress(nil), true, 0, -1},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			cmp, err := tc.path.Compare(tc.other)
			require.NoError(t, err)
			assert.Equal(t, tc.match, cmp.Match)
			assert.Equal(t, tc.compared, cmp.Compared)
			assert.Equal(t, tc.index, cmp.Index)

			if tc.match {
				assert.Less(t, cmp.Distance, model.Tolerance)
			} else {
				assert.GreaterOrEqual(t, cmp.Distance, model.Tolerance)
			}
		})
	}
}

func TestPath_CompareDistance(t *testing.T) {
	cmp, err := model.NewIngress(p1).Compare(model.NewIngress(p3))
	require.NoError(t, err)
	assert.InDelta(t, 0.03196431525012656, cmp.Distance, 1e-9)

	cmp, err = model.NewIngress(p1).Compare(model.NewIngress(p2))
	require.NoError(t, err)
	assert.InDelta(t, 0.004647625360507597, cmp.Distance, 1e-9)
}

func TestPath_CompareWithin(t *testing.T) {
	cmp, err := model.NewIngress(p1).CompareWithin(model.NewIngress(p3), 0.05)
	require.NoError(t, err)
	assert.True(t, cmp.Match)

	cmp, err = model.NewEgress(p1).CompareWithin(model.NewEgress(p2), 0.01)
	require.NoError(t, err)
	assert.False(t, cmp.Match)
	assert.Equal(t, 0, cmp.Index)
}

func TestPath_CompareUnsimplified(t *testing.T) {
	_, err := model.NewIngress(p2).Compare(model.NewIngress(p1))
	assert.ErrorIs(t, err, model.ErrInvalidResampleState)
}

func TestPath_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(model.NewIngress(p1))
	require.NoError(t, err)
	assert.JSONEq(t, "[[47.45636,19.0464],[47.45557,19.04611]]", string(b))

	b, err = json.Marshal(model.NewEgress(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
