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

package output

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	"github.com/twpayne/go-kml"

	"m4o.io/mapval"
	"m4o.io/mapval/internal/codec"
	"m4o.io/mapval/model"
)

const kmlName = "connections.kml"

var (
	green  = color.RGBA{R: 0x1b, G: 0x9e, B: 0x4b, A: 0xff}
	red    = color.RGBA{R: 0xd7, G: 0x30, B: 0x27, A: 0xff}
	blue   = color.RGBA{R: 0x31, G: 0x6b, B: 0xc9, A: 0xc0}
	orange = color.RGBA{R: 0xf4, G: 0x8c, B: 0x06, A: 0xc0}
)

// WriteKML writes a KML document showing the expected and the actual
// connections in separate folders. Matched actual connections are green,
// unmatched ones red; unclaimed expected connections are orange.
func WriteKML(w io.Writer, actual, expected []model.Connection, report *mapval.Report) error {
	matched := kml.SharedStyle("matched", kml.LineStyle(kml.Color(green), kml.Width(3)))
	unmatched := kml.SharedStyle("unmatched", kml.LineStyle(kml.Color(red), kml.Width(3)))
	claimed := kml.SharedStyle("claimed", kml.LineStyle(kml.Color(blue), kml.Width(6)))
	unclaimed := kml.SharedStyle("unclaimed", kml.LineStyle(kml.Color(orange), kml.Width(6)))

	claims := make(map[int]int, len(report.Mappings))
	for _, m := range report.Mappings {
		claims[m.Actual] = m.Expected
	}

	isUnclaimed := make(map[int]bool, len(report.UnclaimedExpected))
	for _, j := range report.UnclaimedExpected {
		isUnclaimed[j] = true
	}

	expectedFolder := []kml.Element{kml.Name("expected")}

	for j, c := range expected {
		style, desc := claimed, "claimed"
		if isUnclaimed[j] {
			style, desc = unclaimed, "unclaimed"
		}

		expectedFolder = append(expectedFolder, connectionPlacemark(fmt.Sprintf("expected %d", j), desc, style.URL(), c))
	}

	actualFolder := []kml.Element{kml.Name("actual")}

	for i, c := range actual {
		style, desc := unmatched, "unmatched"
		if j, ok := claims[i]; ok {
			style, desc = matched, fmt.Sprintf("matches expected %d", j)
		}

		actualFolder = append(actualFolder, connectionPlacemark(fmt.Sprintf("actual %d", i), desc, style.URL(), c))
	}

	doc := []kml.Element{
		kml.Name("connections"),
		matched, unmatched, claimed, unclaimed,
	}

	if bbox := extent(actual, expected); !bbox.IsEmpty() {
		center := bbox.Center()
		span := max(bbox.Top-bbox.Bottom, bbox.Right-bbox.Left)

		// range is in meters
		doc = append(doc, kml.LookAt(
			kml.Latitude(float64(center.Lat)),
			kml.Longitude(float64(center.Lon)),
			kml.Range(1000*span.Radians()*model.EarthRadius+500),
		))
	}

	doc = append(doc, kml.Folder(expectedFolder...), kml.Folder(actualFolder...))

	return kml.KML(kml.Document(doc...)).WriteIndent(w, "", "  ")
}

// SaveKML writes the KML document into dir and returns its path.
func SaveKML(dir string, actual, expected []model.Connection, report *mapval.Report) (string, error) {
	path := filepath.Join(dir, kmlName)

	err := create(path, codec.NONE, func(w io.Writer) error {
		return WriteKML(w, actual, expected, report)
	})
	if err != nil {
		return "", err
	}

	return path, nil
}

func connectionPlacemark(name, desc, styleURL string, c model.Connection) kml.Element {
	return kml.Placemark(
		kml.Name(name),
		kml.Description(desc),
		kml.StyleURL(styleURL),
		kml.MultiGeometry(lineString(c.Ingress), lineString(c.Egress)),
	)
}

func lineString(p model.Path) kml.Element {
	cs := p.Coordinates()
	coords := make([]kml.Coordinate, len(cs))

	for i, c := range cs {
		coords[i] = kml.Coordinate{Lon: float64(c.Lon), Lat: float64(c.Lat)}
	}

	return kml.LineString(kml.Tessellate(true), kml.Coordinates(coords...))
}

func extent(sets ...[]model.Connection) *model.BoundingBox {
	bbox := model.InitialBoundingBox()

	for _, connections := range sets {
		for _, c := range connections {
			bbox.ExpandWithBoundingBox(c.BoundingBox())
		}
	}

	return bbox
}
