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

import (
	"github.com/Fantom-foundation/Pagetrap/vmm/frames"
)

// load brings the given page into a frame. While unused frames remain, the
// next one is taken; otherwise the eviction policy selects a resident page
// whose frame is repurposed.
func (m *Manager) load(page, offset int, access AccessType) (Event, error) {
	event := Event{Page: page, Kind: ReadFault, EvictedPage: NoPage}
	if access == Write {
		event.Kind = WriteFault
	}

	slot, ok := m.directory.Allocate()
	if !ok {
		victim, err := m.policy.SelectVictim(m.directory, m.denier)
		if err != nil {
			return Event{}, err
		}
		evicted := m.directory.Page(victim)
		m.diagf("evicting page %d from frame %d at %#x",
			evicted, m.directory.Frame(victim), m.config.PageAddress(evicted))
		if err := m.deny(evicted); err != nil {
			return Event{}, err
		}
		event.EvictedPage = evicted
		event.WriteBack = m.directory.Flags(victim).Has(frames.Modified)
		m.stats.Evictions++
		if event.WriteBack {
			m.stats.WriteBacks++
		}
		slot = victim
	}

	flags := frames.Accessed
	if access == Write {
		flags |= frames.Modified
	}
	m.directory.SetFlags(slot, flags)
	m.directory.Assign(slot, page)
	m.stats.Loads++

	event.PhysicalAddress = m.physicalAddress(slot, offset)
	return event, nil
}

func (m *Manager) physicalAddress(slot frames.Slot, offset int) int {
	return m.directory.Frame(slot)*m.config.PageSize + offset
}
