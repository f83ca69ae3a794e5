// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

// Distribution describes how indexes in a range [0, size) are picked, e.g.
// the pages touched by a synthetic memory access trace.
type Distribution int

const (
	Sequential  Distribution = 0
	Uniform     Distribution = 1
	Exponential Distribution = 2
)

// Distributions lists all supported distributions.
func Distributions() []Distribution {
	return []Distribution{Sequential, Uniform, Exponential}
}

func (d Distribution) String() string {
	switch d {
	case Sequential:
		return "sequential"
	case Uniform:
		return "uniform"
	case Exponential:
		return "exponential"
	}
	return fmt.Sprintf("unknown(%d)", int(d))
}

// ParseDistribution resolves the name of a distribution.
func ParseDistribution(name string) (Distribution, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range Distributions() {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown distribution %q", name)
}

// Sampler produces indexes following a distribution.
type Sampler struct {
	next func() int
}

// Next returns the next index.
func (s Sampler) Next() int {
	return s.next()
}

// NewSampler creates a sampler of indexes in [0, size) drawing random
// numbers from the given source. Sequential samplers cycle through the
// range starting at 0; exponential samplers favour low indexes.
func (d Distribution) NewSampler(size int, source *rand.Rand) Sampler {
	switch d {
	case Uniform:
		return Sampler{func() int {
			return source.Intn(size)
		}}
	case Exponential:
		expRate := float64(10) / float64(size)
		return Sampler{func() int {
			return int(source.ExpFloat64()/expRate) % size
		}}
	}
	it := -1
	return Sampler{func() int {
		it = (it + 1) % size
		return it
	}}
}
