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
	"strconv"

	"github.com/Fantom-foundation/Pagetrap/vmm/frames"
)

// NoPage is reported as the evicted page of events without an eviction.
const NoPage = frames.NoPage

// EventKind classifies resolved faults. The numeric values are the codes
// written to event logs.
type EventKind int

const (
	ReadFault    EventKind = 0 // a read loaded a non-resident page
	WriteFault   EventKind = 1 // a write loaded a non-resident page
	FirstWrite   EventKind = 2 // first write to a resident page since it got loaded
	ResidentRead EventKind = 3 // read of a resident page whose access was revoked
	RepeatWrite  EventKind = 4 // write to a resident page already modified
)

func (k EventKind) String() string {
	switch k {
	case ReadFault:
		return "read-fault"
	case WriteFault:
		return "write-fault"
	case FirstWrite:
		return "first-write"
	case ResidentRead:
		return "resident-read"
	case RepeatWrite:
		return "repeat-write"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Code returns the numeric code of the kind.
func (k EventKind) Code() int {
	return int(k)
}

// Event summarizes the resolution of a single fault.
type Event struct {
	Page            int       // the virtual page accessed
	Kind            EventKind // the kind of fault
	EvictedPage     int       // the page evicted to make room, NoPage if none
	WriteBack       bool      // whether the evicted page would need to be written back
	PhysicalAddress int       // the accessed address within the frame pool
}

// Evicted reports whether resolving the fault evicted a page.
func (e Event) Evicted() bool {
	return e.EvictedPage != NoPage
}

func (e Event) String() string {
	evicted := "-"
	if e.Evicted() {
		evicted = strconv.Itoa(e.EvictedPage)
	}
	return fmt.Sprintf("page=%d event=%v code=%d evicted=%s write-back=%t phys=%#x",
		e.Page, e.Kind, e.Kind.Code(), evicted, e.WriteBack, e.PhysicalAddress)
}
