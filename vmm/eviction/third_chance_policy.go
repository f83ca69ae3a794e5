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

// ThirdChancePolicy is a clock policy favouring clean pages. The clock hand
// walks backward through the directory:
//   - a referenced page loses its Accessed and ThirdChance flags and is
//     denied access, so the next reference is observed again;
//   - a clean page that was not referenced is evicted;
//   - a dirty page that was not referenced is evicted if it has been passed
//     before, otherwise it is marked with ThirdChance.
//
// Every revolution of the hand clears all Accessed flags, hence the walk
// ends after at most three revolutions.
type ThirdChancePolicy struct{}

func NewThirdChancePolicy() Policy {
	return ThirdChancePolicy{}
}

func (ThirdChancePolicy) SelectVictim(dir *frames.Directory, denier Denier) (frames.Slot, error) {
	if dir.Cursor() == frames.NoSlot {
		return frames.NoSlot, ErrNoResidentPages
	}
	for cur := dir.Prev(dir.Cursor()); ; cur = dir.Prev(cur) {
		dir.SetCursor(cur)
		flags := dir.Flags(cur)
		switch {
		case flags.Has(frames.Accessed):
			dir.SetFlags(cur, flags&^(frames.Accessed|frames.ThirdChance))
			if err := denier.Deny(dir.Page(cur)); err != nil {
				return frames.NoSlot, err
			}
		case !flags.Has(frames.Modified):
			return cur, nil
		case flags.Has(frames.ThirdChance):
			return cur, nil
		default:
			dir.SetFlags(cur, flags|frames.ThirdChance)
		}
	}
}
