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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"m4o.io/mapval"
	"m4o.io/mapval/cmd/mapval/cli"
	"m4o.io/mapval/internal/codec"
	"m4o.io/mapval/internal/config"
	"m4o.io/mapval/internal/input"
	"m4o.io/mapval/internal/output"
	"m4o.io/mapval/model"
)

var out io.Writer = os.Stdout

var (
	configFile  *os.File
	compression codec.Compression
)

func init() {
	cli.RootCmd.AddCommand(validateCmd)
	addFlags(validateCmd.Flags())
}

func addFlags(flags *pflag.FlagSet) {
	flags.BoolP("json", "j", false, "format the report in JSON")
	flags.StringP("out", "o", config.DefaultOutDir, "directory receiving the compared connections")
	flags.Bool("kml", false, "also write connections.kml into the out directory")
	flags.Bool("markdown", false, "also write report.md into the out directory")
	flags.Var(&compression, "compress", "compression of the connection files: none, zlib, lzma, xz, lz4 or zstd")
	flags.Uint16P("cpu", "c", mapval.DefaultNCpu(), "number of CPUs to use for matching")
	flags.Float64P("tolerance", "t", model.Tolerance, "largest distance, in kilometers, between matching points")
	flags.Var(cli.NewConfigFileValue(&configFile), "config", "configuration file, - reads it from stdin")
	flags.BoolP("progress", "p", false, "show progress on stderr")
}

var validateCmd = &cobra.Command{
	Use:   "validate <result file> <expected file>",
	Short: "Compare generated connections with the expected ones",
	Long: "Compare generated connections with the expected ones.\n\n" +
		"Either file may be compressed; the compression is chosen by extension.\n" +
		"A file name of - reads from stdin.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		cfg, err := settings(flags)
		if err != nil {
			log.Fatal(err)
		}

		progress, err := flags.GetBool("progress")
		if err != nil {
			log.Fatal(err)
		}

		var loadOpts []input.LoadOption
		if progress {
			loadOpts = append(loadOpts, input.WithWrapper(cli.WrapInputFile))
		}

		res, err := input.LoadResult(args[0], loadOpts...)
		if err != nil {
			log.Fatal(err)
		}

		expected, err := input.LoadExpected(args[1], loadOpts...)
		if err != nil {
			log.Fatal(err)
		}

		var (
			counter   *cli.Counter
			matchOpts []mapval.MatchOption
		)

		if progress {
			counter = cli.NewCounter(len(res.Connections), "matching")
			matchOpts = append(matchOpts, mapval.WithProgress(counter.Increment))
		}

		report, err := runValidate(cmd.Context(), cfg, res.Connections, expected, matchOpts...)
		if counter != nil {
			counter.Done()
		}

		if err != nil {
			log.Fatal(err)
		}

		run := output.Run{Result: args[0], Expected: args[1], Tolerance: cfg.ToleranceKm}
		if err := writeArtifacts(cfg, run, res.Connections, expected, report); err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(report)
		} else {
			renderTxt(report)
		}
	},
}

// settings reads the configuration file and applies the flags that were
// set explicitly on top of it.
func settings(flags *pflag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if configFile != nil {
		if configFile != os.Stdin {
			defer configFile.Close()
		}

		cfg, err = config.Decode(configFile)
	} else {
		cfg, err = config.Load("")
	}

	if err != nil {
		return nil, err
	}

	if flags.Changed("tolerance") {
		if cfg.ToleranceKm, err = flags.GetFloat64("tolerance"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("cpu") {
		if cfg.Workers, err = flags.GetUint16("cpu"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("out") {
		if cfg.OutDir, err = flags.GetString("out"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("kml") {
		if cfg.KML, err = flags.GetBool("kml"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("markdown") {
		if cfg.Markdown, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("compress") {
		cfg.Compression = compression.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runValidate(ctx context.Context, cfg *config.Config, actual, expected []model.Connection,
	opts ...mapval.MatchOption) (*mapval.Report, error) {
	return mapval.Match(ctx, actual, expected, append(cfg.MatchOptions(), opts...)...)
}

func writeArtifacts(cfg *config.Config, run output.Run, actual, expected []model.Connection, report *mapval.Report) error {
	if err := output.PrepareDir(cfg.OutDir, run.Result, run.Expected); err != nil {
		return err
	}

	c := cfg.Codec()

	if _, err := output.SaveConnections(cfg.OutDir, output.ResultName, actual, c); err != nil {
		return err
	}

	if _, err := output.SaveConnections(cfg.OutDir, output.ExpectedName, expected, c); err != nil {
		return err
	}

	if cfg.KML {
		path, err := output.SaveKML(cfg.OutDir, actual, expected, report)
		if err != nil {
			return err
		}

		slog.Debug("kml saved", "path", path)
	}

	if cfg.Markdown {
		path, err := output.SaveMarkdown(cfg.OutDir, run, report)
		if err != nil {
			return err
		}

		slog.Debug("markdown saved", "path", path)
	}

	return nil
}

func renderJSON(report *mapval.Report) {
	b, err := json.Marshal(report)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintln(out, string(b))
}

func renderTxt(report *mapval.Report) {
	fmt.Fprintln(out, report)
	fmt.Fprintf(out, "Unmatched: %d\n", report.UnmatchedActual)
}
