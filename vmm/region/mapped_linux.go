// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

//go:build linux

package region

import (
	"fmt"
	"runtime/debug"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mapped is a Space backed by an anonymous memory mapping whose protection
// is enforced by the hardware through mprotect. Faults raised by Load and
// Store are turned into recoverable panics using debug.SetPanicOnFault and
// forwarded to the installed trap handler before the access is retried.
type Mapped struct {
	memory   []byte
	pageSize int
	handler  TrapHandler
}

// Map reserves a region of at least size bytes, rounded up to the system's
// page size. The region is initially readable and writable.
func Map(size int) (Space, error) {
	pageSize := unix.Getpagesize()
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}
	size = (size + pageSize - 1) / pageSize * pageSize
	memory, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("failed to map %d bytes: %w", size, err)
	}
	return &Mapped{memory: memory, pageSize: pageSize}, nil
}

func (m *Mapped) Base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(m.memory)))
}

func (m *Mapped) Size() int {
	return len(m.memory)
}

func (m *Mapped) Granularity() int {
	return m.pageSize
}

func (m *Mapped) Protect(addr uintptr, length int, rights Rights) error {
	offset, err := checkRange(m.Base(), len(m.memory), m.pageSize, addr, length)
	if err != nil {
		return err
	}
	if length == 0 {
		return nil
	}
	if err := unix.Mprotect(m.memory[offset:offset+length], toProt(rights)); err != nil {
		return fmt.Errorf("failed to protect [%#x, %#x): %w", addr, addr+uintptr(length), err)
	}
	return nil
}

func (m *Mapped) InstallHandler(handler TrapHandler) error {
	if m.handler != nil {
		return ErrHandlerInstalled
	}
	m.handler = handler
	return nil
}

func (m *Mapped) Load(addr uintptr) (byte, error) {
	for i := 0; ; i++ {
		offset, inside := m.offset(addr)
		if !inside {
			// nothing is mapped there on behalf of this space
			if err := m.trap(&TrapContext{Addr: addr, ErrorCode: faultCode(false, false)}, i); err != nil {
				return 0, err
			}
			continue
		}
		value, fault := m.tryLoad(offset)
		if fault == nil {
			return value, nil
		}
		if err := m.trap(fault, i); err != nil {
			return 0, err
		}
	}
}

func (m *Mapped) Store(addr uintptr, value byte) error {
	for i := 0; ; i++ {
		offset, inside := m.offset(addr)
		if !inside {
			if err := m.trap(&TrapContext{Addr: addr, ErrorCode: faultCode(false, true)}, i); err != nil {
				return err
			}
			continue
		}
		fault := m.tryStore(offset, value)
		if fault == nil {
			return nil
		}
		if err := m.trap(fault, i); err != nil {
			return err
		}
	}
}

func (m *Mapped) Close() error {
	if m.memory == nil {
		return nil
	}
	err := unix.Munmap(m.memory)
	m.memory = nil
	return err
}

func (m *Mapped) offset(addr uintptr) (int, bool) {
	base := m.Base()
	if m.memory == nil || addr < base || addr-base >= uintptr(len(m.memory)) {
		return 0, false
	}
	return int(addr - base), true
}

func (m *Mapped) trap(fault *TrapContext, attempt int) error {
	if m.handler == nil || attempt >= maxTraps {
		return fmt.Errorf("%w at %#x", ErrSegmentationFault, fault.Addr)
	}
	return m.handler(fault)
}

func (m *Mapped) tryLoad(offset int) (value byte, fault *TrapContext) {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if r := recover(); r != nil {
			fault = toTrapContext(r, false)
		}
	}()
	return m.memory[offset], nil
}

func (m *Mapped) tryStore(offset int, value byte) (fault *TrapContext) {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if r := recover(); r != nil {
			fault = toTrapContext(r, true)
		}
	}()
	m.memory[offset] = value
	return nil
}

// toTrapContext converts the panic raised for a memory fault into a trap
// context. Any other panic is propagated.
func toTrapContext(r any, write bool) *TrapContext {
	fault, ok := r.(interface{ Addr() uintptr })
	if !ok {
		panic(r)
	}
	// Faults on mapped pages of this space are always protection violations.
	return &TrapContext{Addr: fault.Addr(), ErrorCode: faultCode(true, write)}
}

func toProt(rights Rights) int {
	switch {
	case rights.CanWrite():
		return unix.PROT_READ | unix.PROT_WRITE
	case rights.CanRead():
		return unix.PROT_READ
	}
	return unix.PROT_NONE
}
