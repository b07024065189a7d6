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

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"m4o.io/mapval/internal/config"
)

// StdinName selects standard input as the configuration source.
const StdinName = "-"

type configFileValue struct {
	file **os.File
	name string
}

// NewConfigFileValue returns the value of a --config flag. Setting it opens
// the named YAML file into *p, closing the file a previous Set opened. The
// name "-" reads the configuration from standard input. *p stays nil until
// the flag is set.
func NewConfigFileValue(p **os.File) pflag.Value {
	*p = nil

	return &configFileValue{file: p}
}

func (v *configFileValue) Set(name string) error {
	f := os.Stdin

	if name != StdinName {
		var err error

		if f, err = os.Open(name); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", config.ErrConfigNotFound, name)
			}

			return err
		}
	}

	if prev := *v.file; prev != nil && prev != os.Stdin {
		prev.Close()
	}

	*v.file = f
	v.name = name

	return nil
}

func (v *configFileValue) Type() string {
	return "file"
}

func (v *configFileValue) String() string {
	return v.name
}
