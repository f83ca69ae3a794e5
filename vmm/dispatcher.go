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
	"fmt"

	"github.com/Fantom-foundation/Pagetrap/vmm/region"
)

// HandleFault is the trap handler installed by Initialize. It resolves a
// trapped access to the managed region and re-authorizes the accessed page
// so that the access can be retried. Accesses outside of the region and
// failures to update page protections are fatal.
func (m *Manager) HandleFault(trap *region.TrapContext) error {
	access := m.classifier.Classify(trap)
	if !m.config.Contains(trap.Addr) {
		return m.fail(fmt.Errorf("%w: %v at %#x", ErrOutOfRangeAccess, access, trap.Addr))
	}

	page, offset := m.config.Locate(trap.Addr)
	m.diagf("trapped %v access to %#x, page %d offset %d", access, trap.Addr, page, offset)
	m.stats.Faults++

	rights, err := m.access(page, offset, access)
	if err != nil {
		return m.fail(err)
	}

	m.diagf("granting %v access to page %d", rights, page)
	if err := m.protect(page, rights); err != nil {
		return m.fail(err)
	}
	return nil
}

// access resolves an access to the given page, either by updating the
// state of the resident page or by loading it, and returns the rights to
// grant on the page.
func (m *Manager) access(page, offset int, access AccessType) (region.Rights, error) {
	var event Event
	if slot, found := m.directory.Find(page); found {
		event = m.touch(slot, page, offset, access)
	} else {
		var err error
		if event, err = m.load(page, offset, access); err != nil {
			return region.None, err
		}
	}
	m.logger.LogEvent(event)
	return access.Rights(), nil
}
