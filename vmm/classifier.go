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

import "github.com/Fantom-foundation/Pagetrap/vmm/region"

// AccessType distinguishes reading from writing accesses.
type AccessType int

const (
	Read AccessType = iota
	Write
)

func (a AccessType) String() string {
	if a == Write {
		return "write"
	}
	return "read"
}

// Rights returns the access rights granted for an access of this type.
func (a AccessType) Rights() region.Rights {
	if a == Write {
		return region.ReadWrite
	}
	return region.Read
}

// Classifier decides whether a trapped access was a read or a write. It is
// the only part of the fault path depending on the conventions of the
// architecture raising the trap.
type Classifier interface {
	Classify(trap *region.TrapContext) AccessType
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(*region.TrapContext) AccessType

func (f ClassifierFunc) Classify(trap *region.TrapContext) AccessType {
	return f(trap)
}

// X86Classifier interprets the page-fault error code of x86 processors,
// where bit 1 is set for write accesses.
type X86Classifier struct{}

func (X86Classifier) Classify(trap *region.TrapContext) AccessType {
	if trap.ErrorCode&region.ErrorCodeWrite != 0 {
		return Write
	}
	return Read
}
