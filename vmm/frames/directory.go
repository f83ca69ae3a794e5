// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package frames

import (
	"strings"
	"unsafe"

	"github.com/Fantom-foundation/Pagetrap/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NoPage marks a record that has not been assigned a virtual page yet.
const NoPage = -1

// Slot identifies a record of a Directory. The slot of a record equals the
// index of the physical frame it describes.
type Slot int32

// NoSlot is returned by lookups failing to locate a record.
const NoSlot = Slot(-1)

// Flags summarizes the reference history of a resident page.
type Flags uint8

const (
	// Accessed is set whenever the page is referenced and cleared by the
	// clock hand of the third-chance policy.
	Accessed Flags = 1 << iota
	// Modified is set on the first write to the page after it got loaded.
	Modified
	// ThirdChance marks a modified page that was passed once by the clock
	// hand without being referenced.
	ThirdChance
)

// Has reports whether all the given flags are set.
func (f Flags) Has(flags Flags) bool {
	return f&flags == flags
}

func (f Flags) String() string {
	var sb strings.Builder
	for _, cur := range []struct {
		flag Flags
		name byte
	}{{Accessed, 'A'}, {Modified, 'M'}, {ThirdChance, 'T'}} {
		if f.Has(cur.flag) {
			sb.WriteByte(cur.name)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// Record describes the content of a single physical frame.
type Record struct {
	Page  int   // the virtual page currently held by the frame
	Frame int   // the index of the frame, fixed once assigned
	Flags Flags // the reference history of the page
	prev  Slot  // predecessor in the circular insertion order
	next  Slot  // successor in the circular insertion order
}

// Directory tracks the virtual pages occupying the physical frames. All
// records are allocated when the directory is created; after that, records
// are only repurposed, never released, keeping the fault path free of
// allocations.
//
// Records form a circular list in insertion order. The list is formed by
// slot indices stored in the records; a distinguished cursor marks the most
// recently inserted record and doubles as the hand of the clock policies.
// A map from virtual pages to slots allows constant time lookups without
// affecting the order of the records.
//
// A Directory is not thread safe.
type Directory struct {
	records []Record     // fixed length list of all frame records
	used    int          // number of records handed out so far
	cursor  Slot         // the current position in the circular list
	index   map[int]Slot // an index on the resident pages
}

// NewDirectory creates a directory for the given number of frames.
func NewDirectory(capacity int) *Directory {
	if capacity < 0 {
		capacity = 0
	}
	records := make([]Record, capacity)
	for i := range records {
		records[i] = Record{Page: NoPage, Frame: i, prev: NoSlot, next: NoSlot}
	}
	return &Directory{
		records: records,
		cursor:  NoSlot,
		index:   make(map[int]Slot, capacity),
	}
}

// Capacity returns the number of physical frames managed by the directory.
func (d *Directory) Capacity() int {
	return len(d.records)
}

// Used returns the number of frames handed out so far.
func (d *Directory) Used() int {
	return d.used
}

// Full reports whether all frames are in use, so that new pages can only be
// loaded by evicting resident ones.
func (d *Directory) Full() bool {
	return d.used >= len(d.records)
}

// Find returns the slot of the record holding the given page.
func (d *Directory) Find(page int) (Slot, bool) {
	slot, found := d.index[page]
	if !found {
		return NoSlot, false
	}
	return slot, true
}

// Allocate hands out the next unused frame. The new record is inserted
// immediately before the cursor and becomes the new cursor. If all frames
// are in use, NoSlot and false are returned.
func (d *Directory) Allocate() (Slot, bool) {
	if d.Full() {
		return NoSlot, false
	}
	slot := Slot(d.used)
	record := &d.records[slot]
	if d.cursor == NoSlot {
		record.prev = slot
		record.next = slot
	} else {
		cursor := &d.records[d.cursor]
		record.prev = cursor.prev
		record.next = d.cursor
		d.records[cursor.prev].next = slot
		cursor.prev = slot
	}
	d.cursor = slot
	d.used++
	return slot, true
}

// Assign makes the record in the given slot hold the given page. A page
// previously held by the record is dropped from the index.
func (d *Directory) Assign(slot Slot, page int) {
	record := &d.records[slot]
	if record.Page != NoPage {
		if cur, found := d.index[record.Page]; found && cur == slot {
			delete(d.index, record.Page)
		}
	}
	record.Page = page
	d.index[page] = slot
}

// Record returns a copy of the record in the given slot.
func (d *Directory) Record(slot Slot) Record {
	return d.records[slot]
}

// Page returns the virtual page held by the given slot.
func (d *Directory) Page(slot Slot) int {
	return d.records[slot].Page
}

// Frame returns the physical frame described by the given slot.
func (d *Directory) Frame(slot Slot) int {
	return d.records[slot].Frame
}

// Flags returns the flags of the given slot.
func (d *Directory) Flags(slot Slot) Flags {
	return d.records[slot].Flags
}

// SetFlags replaces the flags of the given slot.
func (d *Directory) SetFlags(slot Slot, flags Flags) {
	d.records[slot].Flags = flags
}

// Cursor returns the current cursor position, NoSlot if the directory is
// empty.
func (d *Directory) Cursor() Slot {
	return d.cursor
}

// SetCursor moves the cursor to the given slot.
func (d *Directory) SetCursor(slot Slot) {
	d.cursor = slot
}

// Prev returns the predecessor of the given slot in the circular order,
// which is the record inserted before it.
func (d *Directory) Prev(slot Slot) Slot {
	return d.records[slot].prev
}

// Next returns the successor of the given slot in the circular order.
func (d *Directory) Next(slot Slot) Slot {
	return d.records[slot].next
}

// ForEach visits all records in use, starting at the cursor and following
// the successor links.
func (d *Directory) ForEach(consume func(Slot, Record)) {
	if d.cursor == NoSlot {
		return
	}
	cur := d.cursor
	for {
		consume(cur, d.records[cur])
		cur = d.records[cur].next
		if cur == d.cursor {
			return
		}
	}
}

// Pages returns the resident pages in ascending order.
func (d *Directory) Pages() []int {
	res := maps.Keys(d.index)
	slices.Sort(res)
	return res
}

func (d *Directory) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*d))
	mf.AddChild("records", common.NewMemoryFootprint(unsafe.Sizeof(Record{})*uintptr(len(d.records))))
	mf.AddChild("index", common.NewMemoryFootprint((unsafe.Sizeof(int(0))+unsafe.Sizeof(Slot(0)))*uintptr(len(d.index))))
	return mf
}
