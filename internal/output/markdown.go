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
	"io"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"m4o.io/mapval"
	"m4o.io/mapval/internal/codec"
)

const markdownName = "report.md"

// Run describes the inputs of a validation run.
type Run struct {
	Result    string
	Expected  string
	Tolerance float64
}

// WriteMarkdown writes the report as a Markdown document.
func WriteMarkdown(w io.Writer, run Run, report *mapval.Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Connection Validation Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Result", markdown.Code(run.Result)},
			{"Expected", markdown.Code(run.Expected)},
			{"Tolerance", strconv.FormatFloat(run.Tolerance*1000, 'f', -1, 64) + " m"},
		},
	})
	md.PlainText("")

	writeSummary(md, report)
	writeMappings(md, report)
	writeUnclaimed(md, report)

	return md.Build()
}

// SaveMarkdown writes the Markdown report into dir and returns its path.
func SaveMarkdown(dir string, run Run, report *mapval.Report) (string, error) {
	path := filepath.Join(dir, markdownName)

	err := create(path, codec.NONE, func(w io.Writer) error {
		return WriteMarkdown(w, run, report)
	})
	if err != nil {
		return "", err
	}

	return path, nil
}

func writeSummary(md *markdown.Markdown, report *mapval.Report) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Connections", humanize.Comma(int64(report.NumberOfConnections))},
			{"Matches", humanize.Comma(int64(report.NumberOfMatches))},
			{"Duplicates", humanize.Comma(int64(report.NumberOfDuplicates))},
			{"Actual", humanize.Comma(int64(report.NumberOfActual))},
			{"Unmatched", humanize.Comma(int64(report.UnmatchedActual))},
		},
	})
	md.PlainText("")

	switch {
	case report.NumberOfConnections > 0 && report.NumberOfMatches == report.NumberOfConnections:
		md.Tip("Every expected connection was generated.")
	case report.NumberOfMatches < report.NumberOfConnections:
		md.Warningf("%d expected connection(s) were not generated.",
			report.NumberOfConnections-report.NumberOfMatches)
	}

	md.PlainText("")

	if report.NumberOfActual == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Actual connections"),
		piechart.WithShowData(true),
	)

	if n := report.NumberOfMatches; n > 0 {
		chart.LabelAndIntValue("Matches", uint64(n))
	}

	if n := report.NumberOfDuplicates; n > 0 {
		chart.LabelAndIntValue("Duplicates", uint64(n))
	}

	if n := report.UnmatchedActual; n > 0 {
		chart.LabelAndIntValue("Unmatched", uint64(n))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeMappings(md *markdown.Markdown, report *mapval.Report) {
	if len(report.Mappings) == 0 {
		return
	}

	md.H2("Matches")
	md.PlainText("")

	rows := make([][]string, len(report.Mappings))
	for i, m := range report.Mappings {
		rows[i] = []string{strconv.Itoa(m.Actual), strconv.Itoa(m.Expected)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Actual", "Expected"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeUnclaimed(md *markdown.Markdown, report *mapval.Report) {
	if len(report.UnclaimedExpected) == 0 {
		return
	}

	md.H2("Missing")
	md.PlainText("")

	items := make([]string, len(report.UnclaimedExpected))
	for i, j := range report.UnclaimedExpected {
		items[i] = "expected connection " + strconv.Itoa(j)
	}

	md.BulletList(items...)
	md.PlainText("")
}
