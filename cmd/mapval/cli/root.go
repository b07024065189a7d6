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

// Package cli holds the root command and the helpers shared by the mapval
// subcommands.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the command every subcommand registers with.
var RootCmd = &cobra.Command{
	Use:   "mapval",
	Short: "Validate generated road connections",
	Long: "Validate the ingress and egress paths of the road connections generated\n" +
		"for a junction against a hand-curated list of expected connections.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		slog.SetDefault(NewLogger(os.Stderr, verbose))
	},
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug information to stderr")
}

// NewLogger creates a text logger writing to w. Only warnings and errors are
// logged unless verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
