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

package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mapval"
	"m4o.io/mapval/internal/codec"
	"m4o.io/mapval/internal/config"
	"m4o.io/mapval/internal/output"
	"m4o.io/mapval/model"
)

var (
	ramp = []model.Coordinate{
		model.NewCoordinate(47.45636, 19.04640),
		model.NewCoordinate(47.45609, 19.04631),
		model.NewCoordinate(47.45557, 19.04611),
	}
	generated = []model.Coordinate{
		model.NewCoordinate(47.45621, 19.04637),
		model.NewCoordinate(47.45595, 19.04630),
		model.NewCoordinate(47.45556, 19.04617),
	}
	exit = []model.Coordinate{
		model.NewCoordinate(47.45557, 19.04611),
		model.NewCoordinate(47.45500, 19.04600),
	}
)

func connections() (actual, expected []model.Connection) {
	expected = []model.Connection{
		model.NewConnection(ramp, exit),
		model.NewConnection(exit, exit),
	}
	actual = []model.Connection{
		model.NewConnection(generated, exit),
		model.NewConnection(ramp, exit),
		model.NewConnection(exit, ramp),
	}

	return actual, expected
}

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()

	compression = codec.NONE

	flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	addFlags(flags)

	return flags
}

func TestRunValidate(t *testing.T) {
	actual, expected := connections()

	cfg := config.Default()
	cfg.Workers = 2

	report, err := runValidate(context.Background(), cfg, actual, expected)
	require.NoError(t, err)

	assert.Equal(t, 2, report.NumberOfConnections)
	assert.Equal(t, 1, report.NumberOfMatches)
	assert.Equal(t, 1, report.NumberOfDuplicates)
	assert.Equal(t, 1, report.UnmatchedActual)
	assert.Equal(t, []int{1}, report.UnclaimedExpected)
}

func TestRunValidate_Tolerance(t *testing.T) {
	actual, expected := connections()

	cfg := config.Default()
	cfg.ToleranceKm = 0.001

	report, err := runValidate(context.Background(), cfg, actual, expected)
	require.NoError(t, err)

	assert.Equal(t, 1, report.NumberOfMatches)
	assert.Equal(t, 0, report.NumberOfDuplicates)
	assert.Equal(t, 2, report.UnmatchedActual)
}

func TestWriteArtifacts(t *testing.T) {
	actual, expected := connections()

	cfg := config.Default()
	cfg.OutDir = filepath.Join(t.TempDir(), "out")
	cfg.Compression = "zstd"
	cfg.KML = true
	cfg.Markdown = true

	report, err := runValidate(context.Background(), cfg, actual, expected)
	require.NoError(t, err)

	run := output.Run{Result: "result.json", Expected: "expected.json", Tolerance: cfg.ToleranceKm}
	require.NoError(t, writeArtifacts(cfg, run, actual, expected, report))

	for _, name := range []string{"result.json.zst", "expected.json.zst", "connections.kml", "report.md"} {
		assert.FileExists(t, filepath.Join(cfg.OutDir, name))
	}

	cfg.KML = false
	cfg.Markdown = false
	cfg.Compression = "none"
	require.NoError(t, writeArtifacts(cfg, run, actual, expected, report))

	entries, err := os.ReadDir(cfg.OutDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.ElementsMatch(t, []string{"result.json", "expected.json"}, names)
}

func TestWriteArtifacts_InputInOutDir(t *testing.T) {
	actual, expected := connections()

	cfg := config.Default()
	cfg.OutDir = t.TempDir()

	report, err := runValidate(context.Background(), cfg, actual, expected)
	require.NoError(t, err)

	input := filepath.Join(cfg.OutDir, "result.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0o600))

	run := output.Run{Result: input, Expected: "-", Tolerance: cfg.ToleranceKm}
	err = writeArtifacts(cfg, run, actual, expected, report)
	require.ErrorIs(t, err, output.ErrInputInOutDir)

	b, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapval.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kml: true\nworkers: 3\ntolerance_km: 0.01\n"), 0o600))

	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--config", path, "--tolerance", "0.05", "--compress", "xz", "-o", "build"}))

	cfg, err := settings(flags)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, cfg.ToleranceKm, 1e-12)
	assert.Equal(t, uint16(3), cfg.Workers)
	assert.True(t, cfg.KML)
	assert.False(t, cfg.Markdown)
	assert.Equal(t, "build", cfg.OutDir)
	assert.Equal(t, codec.XZ, cfg.Codec())
}

func TestSettings_FlagOverridesInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapval.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance_km: 0\nworkers: 0\n"), 0o600))

	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--config", path, "--tolerance", "0.03", "--cpu", "2"}))

	cfg, err := settings(flags)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, cfg.ToleranceKm, 1e-12)
	assert.Equal(t, uint16(2), cfg.Workers)

	flags = newFlags(t)
	require.NoError(t, flags.Parse([]string{"--config", path, "--tolerance", "0.03"}))

	_, err = settings(flags)
	assert.ErrorIs(t, err, config.ErrInvalidWorkers)
}

func TestSettings_Invalid(t *testing.T) {
	test_cases := []struct {
		name string
		args []string
		err  error
	}{
		{"tolerance", []string{"--tolerance", "-1"}, config.ErrInvalidTolerance},
		{"workers", []string{"--cpu", "0"}, config.ErrInvalidWorkers},
		{"out", []string{"--out="}, config.ErrEmptyOutDir},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			flags := newFlags(t)
			require.NoError(t, flags.Parse(tc.args))

			_, err := settings(flags)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestSettings_UnknownCompression(t *testing.T) {
	flags := newFlags(t)
	err := flags.Parse([]string{"--compress", "brotli"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), codec.ErrUnknownCompression.Error())
}

func TestRenderJSON(t *testing.T) {
	actual, expected := connections()

	report, err := runValidate(context.Background(), config.Default(), actual, expected)
	require.NoError(t, err)

	// mock out to collect JSON output
	var buf bytes.Buffer

	saved := out

	defer func() { out = saved }()

	out = &buf

	renderJSON(report)

	got := &mapval.Report{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), got))
	assert.Equal(t, report, got)
}

func TestRenderText(t *testing.T) {
	actual, expected := connections()

	report, err := runValidate(context.Background(), config.Default(), actual, expected)
	require.NoError(t, err)

	// mock out to collect text output
	var buf bytes.Buffer

	saved := out

	defer func() { out = saved }()

	out = &buf

	renderTxt(report)

	assert.Equal(t, `Connections: 2
Matches: 1
Duplicates: 1
Unmatched: 1
`, buf.String())
}
