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

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/mapval/cmd/mapval/cli"
	"m4o.io/mapval/internal/input"
	"m4o.io/mapval/internal/output"
	"m4o.io/mapval/model"
)

var out io.Writer = os.Stdout

// connectionInfo describes one connection before and after simplification.
// Lengths are in kilometers.
type connectionInfo struct {
	Raw           input.Size `json:"raw"`
	Simplified    input.Size `json:"simplified"`
	IngressLength float64    `json:"ingress_length"`
	EgressLength  float64    `json:"egress_length"`
	Ingress       string     `json:"ingress"`
	Egress        string     `json:"egress"`
}

type summary struct {
	RefPoint    *model.Coordinate  `json:"ref_point,omitempty"`
	BoundingBox *model.BoundingBox `json:"bounding_box,omitempty"`
	Connections []connectionInfo   `json:"connections"`
}

func init() {
	cli.RootCmd.AddCommand(inspectCmd)

	flags := inspectCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("progress", "p", false, "show progress on stderr")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [<result file>]",
	Short: "Print the connections of a result file",
	Long: "Print, for every connection of a result file, the number of vertices\n" +
		"before and after simplification, the path lengths and the simplified\n" +
		"paths as encoded polylines.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := input.Stdin
		if len(args) == 1 {
			name = args[0]
		}

		flags := cmd.Flags()

		progress, err := flags.GetBool("progress")
		if err != nil {
			log.Fatal(err)
		}

		var opts []input.LoadOption
		if progress {
			opts = append(opts, input.WithWrapper(cli.WrapInputFile))
		}

		res, err := input.LoadResult(name, opts...)
		if err != nil {
			log.Fatal(err)
		}

		s := runInspect(res)

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(s)
		} else {
			renderTxt(s)
		}
	},
}

func runInspect(res *input.Result) *summary {
	s := &summary{
		RefPoint:    res.RefPoint,
		Connections: make([]connectionInfo, len(res.Connections)),
	}

	bbox := model.InitialBoundingBox()

	for i, c := range res.Connections {
		bbox.ExpandWithBoundingBox(c.BoundingBox())

		info := connectionInfo{
			Simplified:    input.Size{Ingress: c.Ingress.Len(), Egress: c.Egress.Len()},
			IngressLength: c.Ingress.Length(),
			EgressLength:  c.Egress.Length(),
			Ingress:       output.Polyline(c.Ingress),
			Egress:        output.Polyline(c.Egress),
		}

		if i < len(res.Sizes) {
			info.Raw = res.Sizes[i]
		}

		s.Connections[i] = info
	}

	if !bbox.IsEmpty() {
		s.BoundingBox = bbox
	}

	return s
}

func renderJSON(s *summary) {
	b, err := json.Marshal(s)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintln(out, string(b))
}

func renderTxt(s *summary) {
	if s.RefPoint != nil {
		fmt.Fprintf(out, "RefPoint: %s %s, %s\n", s.RefPoint, s.RefPoint.Lat, s.RefPoint.Lon)
	}

	if s.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", s.BoundingBox)
	}

	fmt.Fprintf(out, "Connections: %s\n", humanize.Comma(int64(len(s.Connections))))

	for i, c := range s.Connections {
		fmt.Fprintf(out, "%d ingress: %d -> %d points, %s m, %s\n",
			i, c.Raw.Ingress, c.Simplified.Ingress, meters(c.IngressLength), c.Ingress)
		fmt.Fprintf(out, "%d egress: %d -> %d points, %s m, %s\n",
			i, c.Raw.Egress, c.Simplified.Egress, meters(c.EgressLength), c.Egress)
	}
}

func meters(km float64) string {
	return humanize.CommafWithDigits(km*1000, 1)
}
