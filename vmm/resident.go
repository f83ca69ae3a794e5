// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vmm

import "github.com/Fantom-foundation/Pagetrap/vmm/frames"

// touch records an access to a resident page. Such accesses trap when the
// page is written for the first time after a read, or when the clock hand
// revoked the rights of the page. Any reference withdraws a pending third
// chance.
func (m *Manager) touch(slot frames.Slot, page, offset int, access AccessType) Event {
	flags := m.directory.Flags(slot)
	kind := ResidentRead
	if access == Write {
		if flags.Has(frames.Modified) {
			kind = RepeatWrite
		} else {
			kind = FirstWrite
			flags |= frames.Modified
		}
	}
	flags |= frames.Accessed
	flags &^= frames.ThirdChance
	m.directory.SetFlags(slot, flags)
	m.stats.Hits++

	return Event{
		Page:            page,
		Kind:            kind,
		EvictedPage:     NoPage,
		PhysicalAddress: m.physicalAddress(slot, offset),
	}
}
