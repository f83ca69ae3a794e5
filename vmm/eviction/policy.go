// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package eviction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/Pagetrap/common"
	"github.com/Fantom-foundation/Pagetrap/vmm/frames"
)

//go:generate mockgen -source policy.go -destination policy_mocks.go -package eviction

const (
	// ErrUnsupportedPolicy is produced when a victim is requested from a
	// policy selector this package does not implement.
	ErrUnsupportedPolicy = common.ConstError("unsupported eviction policy")
	// ErrNoResidentPages is produced when a victim is requested from an
	// empty directory.
	ErrNoResidentPages = common.ConstError("no resident pages to evict")
)

// Denier revokes all access rights of a virtual page, such that the next
// reference to it traps again.
type Denier interface {
	Deny(page int) error
}

// Policy selects the record to be repurposed when a page needs to be loaded
// while all frames are in use.
type Policy interface {
	// SelectVictim picks a victim among the records of the given directory
	// and moves the directory's cursor to it. Pages passed by the clock hand
	// may be denied access through the given Denier.
	SelectVictim(dir *frames.Directory, denier Denier) (frames.Slot, error)
}

// Selector enumerates the supported eviction policies.
type Selector int

const (
	FIFO        Selector = 1
	ThirdChance Selector = 2
)

// Selectors lists all supported policy selectors.
func Selectors() []Selector {
	return []Selector{FIFO, ThirdChance}
}

func (s Selector) String() string {
	switch s {
	case FIFO:
		return "fifo"
	case ThirdChance:
		return "third"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ParseSelector accepts the names produced by String as well as the numeric
// selector values.
func ParseSelector(name string) (Selector, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Selectors() {
		if s.String() == name {
			return s, nil
		}
	}
	switch name {
	case "third-chance", "thirdchance", "clock":
		return ThirdChance, nil
	}
	value, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("invalid eviction policy %q", name)
	}
	return Selector(value), nil
}

// ForSelector returns the policy for the given selector. Selectors not
// supported by this package produce a policy failing on each request for a
// victim, so that an unsupported configuration only surfaces once an
// eviction is actually needed.
func ForSelector(s Selector) Policy {
	switch s {
	case FIFO:
		return NewFifoPolicy()
	case ThirdChance:
		return NewThirdChancePolicy()
	}
	return unsupportedPolicy{selector: s}
}

type unsupportedPolicy struct {
	selector Selector
}

func (p unsupportedPolicy) SelectVictim(*frames.Directory, Denier) (frames.Slot, error) {
	return frames.NoSlot, fmt.Errorf("%w: %v", ErrUnsupportedPolicy, p.selector)
}
