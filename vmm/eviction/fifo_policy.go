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

import "github.com/Fantom-foundation/Pagetrap/vmm/frames"

// FifoPolicy evicts pages in the order they were loaded, ignoring how they
// have been used since.
type FifoPolicy struct{}

func NewFifoPolicy() Policy {
	return FifoPolicy{}
}

func (FifoPolicy) SelectVictim(dir *frames.Directory, _ Denier) (frames.Slot, error) {
	if dir.Cursor() == frames.NoSlot {
		return frames.NoSlot, ErrNoResidentPages
	}
	victim := dir.Prev(dir.Cursor())
	dir.SetCursor(victim)
	return victim, nil
}
