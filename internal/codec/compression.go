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

// Package codec compresses and decompresses the files read and written by
// the validator. The compression of a file is chosen by its extension.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnknownCompression = errors.New("unknown compression type")

// Compression is the compression applied to a file.
type Compression int8

const (
	NONE Compression = iota
	ZLIB
	LZMA
	XZ
	LZ4
	ZSTD
)

var compressions = []struct {
	name string
	ext  string
}{
	NONE: {"none", ""},
	ZLIB: {"zlib", ".zz"},
	LZMA: {"lzma", ".lzma"},
	XZ:   {"xz", ".xz"},
	LZ4:  {"lz4", ".lz4"},
	ZSTD: {"zstd", ".zst"},
}

// ParseCompression returns the compression with the given name.
func ParseCompression(s string) (Compression, error) {
	if s == "" {
		return NONE, nil
	}

	for c, desc := range compressions {
		if strings.EqualFold(desc.name, s) {
			return Compression(c), nil
		}
	}

	return NONE, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// FromPath chooses the compression matching the extension of name. Names
// without a known compression extension are uncompressed.
func FromPath(name string) Compression {
	ext := strings.ToLower(filepath.Ext(name))

	for c, desc := range compressions {
		if desc.ext != "" && desc.ext == ext {
			return Compression(c)
		}
	}

	return NONE
}

// Extension returns the file name suffix for the compression, including the
// leading dot. It is empty for NONE.
func (c Compression) Extension() string {
	if !c.valid() {
		return ""
	}

	return compressions[c].ext
}

func (c Compression) String() string {
	if !c.valid() {
		return fmt.Sprintf("Compression(%d)", int(c))
	}

	return compressions[c].name
}

// Set implements pflag.Value.
func (c *Compression) Set(s string) error {
	v, err := ParseCompression(s)
	if err != nil {
		return err
	}

	*c = v

	return nil
}

// Type implements pflag.Value.
func (c *Compression) Type() string {
	return "compression"
}

func (c Compression) valid() bool {
	return c >= NONE && int(c) < len(compressions)
}
