// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package region

import (
	"fmt"

	"github.com/Fantom-foundation/Pagetrap/common"
)

//go:generate mockgen -source region.go -destination region_mocks.go -package region

const (
	// ErrSegmentationFault is reported for trapped accesses no handler
	// resolved.
	ErrSegmentationFault = common.ConstError("segmentation fault")
	// ErrHandlerInstalled is reported when a second trap handler is to be
	// installed on a space.
	ErrHandlerInstalled = common.ConstError("trap handler already installed")
	// ErrInvalidRange is reported for protection requests not covering a
	// page aligned range within the space.
	ErrInvalidRange = common.ConstError("invalid address range")
)

// Rights are the kinds of accesses granted on a page.
type Rights uint8

const (
	None      Rights = 0
	Read      Rights = 1
	ReadWrite Rights = Read | 2
)

func (r Rights) CanRead() bool {
	return r&Read != 0
}

func (r Rights) CanWrite() bool {
	return r&ReadWrite == ReadWrite
}

func (r Rights) String() string {
	switch {
	case r.CanWrite():
		return "read-write"
	case r.CanRead():
		return "read"
	}
	return "none"
}

// Page fault error code bits, following the x86 convention.
const (
	ErrorCodePresent uint64 = 1 << 0 // the page was mapped, the access violated its protection
	ErrorCodeWrite   uint64 = 1 << 1 // the faulting access was a write
	ErrorCodeUser    uint64 = 1 << 2 // the access originated in user mode
)

// TrapContext describes a trapped access.
type TrapContext struct {
	Addr      uintptr // the faulting address
	ErrorCode uint64  // architecture specific cause of the fault
}

func (c *TrapContext) String() string {
	return fmt.Sprintf("fault at %#x (error code %#x)", c.Addr, c.ErrorCode)
}

// TrapHandler resolves a trapped access. If it returns nil, the access is
// retried; otherwise the error is reported to the accessing code.
type TrapHandler func(*TrapContext) error

// Space is an address space able to deny accesses to pages and to report
// accesses to denied addresses to a trap handler. Accesses are performed
// through Load and Store, each of which invokes the handler synchronously
// on the calling goroutine whenever the access is not permitted.
//
// Spaces are not thread safe; at most one goroutine may access a space at
// any time.
type Space interface {
	// Base returns the lowest address of the space.
	Base() uintptr
	// Size returns the number of bytes covered by the space.
	Size() int
	// Granularity returns the size of the units protections are applied to.
	Granularity() int
	// Protect sets the access rights of the given granularity aligned range.
	Protect(addr uintptr, length int, rights Rights) error
	// InstallHandler registers the handler for trapped accesses. Only a
	// single handler may be installed.
	InstallHandler(handler TrapHandler) error
	// Load reads the byte at the given address.
	Load(addr uintptr) (byte, error)
	// Store writes the byte at the given address.
	Store(addr uintptr, value byte) error
	// Close releases the resources of the space.
	Close() error
}

// maxTraps bounds the number of traps raised by a single access. A handler
// resolves an access with a single trap; repeated traps indicate a handler
// failing to grant the required rights.
const maxTraps = 4

// checkRange verifies that the given range is aligned to the granularity
// and located within [base, base+size) and returns its offset.
func checkRange(base uintptr, size, granularity int, addr uintptr, length int) (int, error) {
	if addr < base || length < 0 || addr-base > uintptr(size) || uintptr(length) > uintptr(size)-(addr-base) {
		return 0, fmt.Errorf("%w: [%#x, %#x) not within [%#x, %#x)", ErrInvalidRange, addr, addr+uintptr(length), base, base+uintptr(size))
	}
	offset := int(addr - base)
	if offset%granularity != 0 || length%granularity != 0 {
		return 0, fmt.Errorf("%w: [%#x, %#x) not aligned to %d bytes", ErrInvalidRange, addr, addr+uintptr(length), granularity)
	}
	return offset, nil
}

// faultCode computes the error code reported for a trapped access.
func faultCode(present, write bool) uint64 {
	code := ErrorCodeUser
	if present {
		code |= ErrorCodePresent
	}
	if write {
		code |= ErrorCodeWrite
	}
	return code
}
