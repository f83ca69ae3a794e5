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
	"testing"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

func TestDistribution_ReturnRandValues(t *testing.T) {
	const nums = 1000
	for _, dis := range []Distribution{Sequential, Uniform, Exponential} {
		for _, size := range []int{nums, 2 * nums, 5 * nums} {
			dis, size := dis, size
			t.Run(fmt.Sprintf("distribution_%v_%d", dis, size), func(t *testing.T) {
				t.Parallel()
				sampler := dis.NewSampler(size, rand.New(rand.NewSource(uint64(size))))
				data := make([]int, 0, nums)
				for i := 0; i < nums; i++ {
					data = append(data, sampler.Next())
				}
				// test that at least 30% of values is not the same
				slices.Sort(data)
				window := int(nums * 0.3)
				for i := 0; i < len(data)-window; i++ {
					if data[i] == data[i+window] {
						t.Errorf("random array contains too many equal values: %v", data)
					}
				}
			})
		}
	}
}

func TestDistribution_ValuesAreInRange(t *testing.T) {
	const size = 7
	for _, dis := range Distributions() {
		sampler := dis.NewSampler(size, rand.New(rand.NewSource(1)))
		for i := 0; i < 1000; i++ {
			if got := sampler.Next(); got < 0 || got >= size {
				t.Fatalf("%v produced value out of range: %d", dis, got)
			}
		}
	}
}

func TestDistribution_SequentialCyclesThroughRange(t *testing.T) {
	sampler := Sequential.NewSampler(3, nil)
	for i := 0; i < 9; i++ {
		if got, want := sampler.Next(), i%3; got != want {
			t.Errorf("unexpected value, wanted %d, got %d", want, got)
		}
	}
}

func TestDistribution_SameSeedGivesSameValues(t *testing.T) {
	for _, dis := range Distributions() {
		a := dis.NewSampler(100, rand.New(rand.NewSource(42)))
		b := dis.NewSampler(100, rand.New(rand.NewSource(42)))
		for i := 0; i < 100; i++ {
			if x, y := a.Next(), b.Next(); x != y {
				t.Fatalf("%v is not reproducible, got %d and %d", dis, x, y)
			}
		}
	}
}

func TestDistribution_NamesCanBeParsed(t *testing.T) {
	for _, dis := range Distributions() {
		got, err := ParseDistribution(dis.String())
		if err != nil || got != dis {
			t.Errorf("unexpected result of parsing %q, wanted %v, got %v (%v)", dis.String(), dis, got, err)
		}
	}
	if _, err := ParseDistribution("gaussian"); err == nil {
		t.Errorf("parsing an unknown distribution should fail")
	}
	if got, want := Distribution(5).String(), "unknown(5)"; got != want {
		t.Errorf("unexpected name, wanted %q, got %q", want, got)
	}
}
