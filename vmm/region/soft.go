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
)

// Soft is a Space emulating page protection in software. Its memory is an
// ordinary byte slice placed at an arbitrary base address; accesses are
// checked against per-page rights before being performed. Addresses outside
// the space are treated as unmapped and always trap.
type Soft struct {
	base     uintptr
	memory   []byte
	rights   []Rights
	pageSize int
	handler  TrapHandler
}

// NewSoft creates a software space of the given size at the given base
// address, protecting memory in units of pageSize bytes. All pages are
// initially readable and writable.
func NewSoft(base uintptr, size, pageSize int) (*Soft, error) {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return nil, fmt.Errorf("page size must be a power of two, got %d", pageSize)
	}
	if size <= 0 || size%pageSize != 0 {
		return nil, fmt.Errorf("size must be a positive multiple of the page size %d, got %d", pageSize, size)
	}
	if base%uintptr(pageSize) != 0 {
		return nil, fmt.Errorf("base address %#x is not aligned to page size %d", base, pageSize)
	}
	rights := make([]Rights, size/pageSize)
	for i := range rights {
		rights[i] = ReadWrite
	}
	return &Soft{
		base:     base,
		memory:   make([]byte, size),
		rights:   rights,
		pageSize: pageSize,
	}, nil
}

func (s *Soft) Base() uintptr {
	return s.base
}

func (s *Soft) Size() int {
	return len(s.memory)
}

func (s *Soft) Granularity() int {
	return s.pageSize
}

// Rights returns the rights currently granted on the page containing the
// given address; addresses outside the space have no rights.
func (s *Soft) Rights(addr uintptr) Rights {
	offset, inside := s.offset(addr)
	if !inside {
		return None
	}
	return s.rights[offset/s.pageSize]
}

func (s *Soft) Protect(addr uintptr, length int, rights Rights) error {
	offset, err := checkRange(s.base, len(s.memory), s.pageSize, addr, length)
	if err != nil {
		return err
	}
	first := offset / s.pageSize
	for i := first; i < first+length/s.pageSize; i++ {
		s.rights[i] = rights
	}
	return nil
}

func (s *Soft) InstallHandler(handler TrapHandler) error {
	if s.handler != nil {
		return ErrHandlerInstalled
	}
	s.handler = handler
	return nil
}

func (s *Soft) Load(addr uintptr) (byte, error) {
	for i := 0; ; i++ {
		offset, inside := s.offset(addr)
		if inside && s.rights[offset/s.pageSize].CanRead() {
			return s.memory[offset], nil
		}
		if err := s.trap(addr, inside, false, i); err != nil {
			return 0, err
		}
	}
}

func (s *Soft) Store(addr uintptr, value byte) error {
	for i := 0; ; i++ {
		offset, inside := s.offset(addr)
		if inside && s.rights[offset/s.pageSize].CanWrite() {
			s.memory[offset] = value
			return nil
		}
		if err := s.trap(addr, inside, true, i); err != nil {
			return err
		}
	}
}

func (s *Soft) Close() error {
	s.memory = nil
	s.rights = nil
	return nil
}

func (s *Soft) offset(addr uintptr) (int, bool) {
	if addr < s.base || addr-s.base >= uintptr(len(s.memory)) {
		return 0, false
	}
	return int(addr - s.base), true
}

func (s *Soft) trap(addr uintptr, inside, write bool, attempt int) error {
	if s.handler == nil || attempt >= maxTraps {
		return fmt.Errorf("%w at %#x", ErrSegmentationFault, addr)
	}
	present := inside && s.rights[int(addr-s.base)/s.pageSize] != None
	return s.handler(&TrapContext{Addr: addr, ErrorCode: faultCode(present, write)})
}
