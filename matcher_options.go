// Copyright 2017-25 the original author or authors.
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

package mapval

import (
	"runtime"

	"m4o.io/mapval/model"
)

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// matchOptions provides optional configuration parameters for Match.
type matchOptions struct {
	nCPU      uint16  // the number of CPUs to use for background processing
	tolerance float64 // point matching distance in kilometers
	progress  func()  // called once per processed actual connection
}

// MatchOption configures how connections are matched.
type MatchOption func(*matchOptions)

// WithNCpus lets you set the number of CPUs to use for background processing.
func WithNCpus(n uint16) MatchOption {
	return func(o *matchOptions) {
		o.nCPU = n
	}
}

// WithTolerance lets you set the distance, in kilometers, below which two
// points are the same location. The default is model.Tolerance.
func WithTolerance(km float64) MatchOption {
	return func(o *matchOptions) {
		o.tolerance = km
	}
}

// WithProgress registers a callback invoked after each actual connection has
// been matched. It may be called from several goroutines at once.
func WithProgress(f func()) MatchOption {
	return func(o *matchOptions) {
		o.progress = f
	}
}

// defaultMatchConfig provides a default configuration for Match.
var defaultMatchConfig = matchOptions{
	nCPU:      DefaultNCpu(),
	tolerance: model.Tolerance,
	progress:  func() {},
}
