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

// Package config holds the settings of the mapval command line tool.
package config

import (
	"errors"
	"fmt"

	"m4o.io/mapval"
	"m4o.io/mapval/internal/codec"
	"m4o.io/mapval/model"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "mapval"

	// DefaultOutDir is where the compared connections are written.
	DefaultOutDir = "out"
)

var (
	ErrInvalidTolerance   = errors.New("tolerance must be positive")
	ErrInvalidWorkers     = errors.New("workers must be at least 1")
	ErrInvalidCompression = errors.New("invalid compression")
	ErrEmptyOutDir        = errors.New("out_dir must not be empty")
)

// Config holds the settings of a validation run. Values read from a file are
// overridden by explicit command line flags.
type Config struct {
	// ToleranceKm is the largest distance, in kilometers, at which two
	// sampled points are still considered the same.
	ToleranceKm float64 `yaml:"tolerance_km"`

	// Workers is the number of goroutines comparing connections.
	Workers uint16 `yaml:"workers"`

	// OutDir receives result.json, expected.json and the optional reports.
	OutDir string `yaml:"out_dir"`

	// Compression of the connection files written to OutDir.
	Compression string `yaml:"compression"`

	// KML enables writing connections.kml.
	KML bool `yaml:"kml"`

	// Markdown enables writing report.md.
	Markdown bool `yaml:"markdown"`
}

// Default returns the settings used when neither a file nor a flag says
// otherwise.
func Default() *Config {
	return &Config{
		ToleranceKm: model.Tolerance,
		Workers:     mapval.DefaultNCpu(),
		OutDir:      DefaultOutDir,
		Compression: codec.NONE.String(),
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if !(c.ToleranceKm > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, c.ToleranceKm)
	}

	if c.Workers < 1 {
		return ErrInvalidWorkers
	}

	if c.OutDir == "" {
		return ErrEmptyOutDir
	}

	if _, err := codec.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCompression, err)
	}

	return nil
}

// Codec returns the parsed compression, NONE when it cannot be parsed.
func (c *Config) Codec() codec.Compression {
	compression, err := codec.ParseCompression(c.Compression)
	if err != nil {
		return codec.NONE
	}

	return compression
}

// MatchOptions converts the settings into options for mapval.Match.
func (c *Config) MatchOptions() []mapval.MatchOption {
	return []mapval.MatchOption{
		mapval.WithNCpus(c.Workers),
		mapval.WithTolerance(c.ToleranceKm),
	}
}
