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

	"github.com/Fantom-foundation/Pagetrap/common"
	"github.com/Fantom-foundation/Pagetrap/vmm/eviction"
)

const (
	// ErrInvalidConfig is reported by Initialize for unusable configurations.
	ErrInvalidConfig = common.ConstError("invalid configuration")
	// ErrOutOfRangeAccess is the fatal condition of a trapped access outside
	// of the managed region.
	ErrOutOfRangeAccess = common.ConstError("segmentation fault outside of managed region")
	// ErrUnsupportedPolicy is the fatal condition of an eviction requested
	// under an unknown policy selector.
	ErrUnsupportedPolicy = eviction.ErrUnsupportedPolicy
	// ErrProtection is the fatal condition of failing to update the access
	// rights of a page.
	ErrProtection = common.ConstError("failed to update page protection")
)

// Config describes the region managed by a Manager.
type Config struct {
	Policy     eviction.Selector // the eviction policy
	Base       uintptr           // the first address of the region
	Size       int               // the size of the region in bytes
	FrameCount int               // the number of physical frames
	PageSize   int               // the size of pages and frames in bytes
}

// Validate checks the internal consistency of the configuration. The policy
// selector is not checked; unsupported policies are reported when the
// first eviction is needed.
func (c *Config) Validate() error {
	if c.PageSize <= 0 || c.PageSize&(c.PageSize-1) != 0 {
		return fmt.Errorf("%w: page size must be a power of two, got %d", ErrInvalidConfig, c.PageSize)
	}
	if c.Size <= 0 || c.Size%c.PageSize != 0 {
		return fmt.Errorf("%w: region size must be a positive multiple of the page size %d, got %d", ErrInvalidConfig, c.PageSize, c.Size)
	}
	if c.FrameCount <= 0 {
		return fmt.Errorf("%w: frame count must be positive, got %d", ErrInvalidConfig, c.FrameCount)
	}
	if c.Base+uintptr(c.Size) < c.Base {
		return fmt.Errorf("%w: region at %#x of size %d overflows the address space", ErrInvalidConfig, c.Base, c.Size)
	}
	return nil
}

// PageCount returns the number of virtual pages in the region.
func (c *Config) PageCount() int {
	return c.Size / c.PageSize
}

// Contains reports whether the given address is part of the region.
func (c *Config) Contains(addr uintptr) bool {
	return addr >= c.Base && addr-c.Base < uintptr(c.Size)
}

// Locate splits an address of the region into its page index and the
// offset within the page.
func (c *Config) Locate(addr uintptr) (page, offset int) {
	rel := int(addr - c.Base)
	return rel / c.PageSize, rel % c.PageSize
}

// PageAddress returns the first address of the given virtual page.
func (c *Config) PageAddress(page int) uintptr {
	return c.Base + uintptr(page)*uintptr(c.PageSize)
}
