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

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = ".mapval.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Decode overlays the YAML document read from r onto the defaults. Unknown
// keys are rejected. The result is not validated, so that command line
// flags can still override it; call Validate once they are applied.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFile reads the configuration file at path. If the file does not
// exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}

		return nil, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}

	slog.Debug("configuration loaded", "path", path)

	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, when it is not empty
//  2. .mapval.yaml in the current directory
//  3. mapval/config.yaml in the XDG config home
//
// It returns an empty string when no file was found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		return ""
	}

	candidates := []string{
		DefaultConfigFile,
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	return ""
}

// Load finds and reads the configuration file. An explicit configPath that
// does not exist is an error; otherwise a missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}

		return Default(), nil
	}

	return LoadConfigFile(path)
}
