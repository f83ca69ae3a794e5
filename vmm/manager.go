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
	"log"
	"unsafe"

	"github.com/Fantom-foundation/Pagetrap/common"
	"github.com/Fantom-foundation/Pagetrap/vmm/eviction"
	"github.com/Fantom-foundation/Pagetrap/vmm/frames"
	"github.com/Fantom-foundation/Pagetrap/vmm/region"
	"github.com/tebeka/atexit"
)

// Manager implements demand paging for a region of a Space. All access to
// the region is denied initially; every trapped access is resolved by
// loading the page into one of a fixed number of frames, evicting another
// page if needed, and granting the rights required by the access.
//
// A Manager is driven synchronously by the traps of its space and is, like
// the space, not thread safe.
type Manager struct {
	config     Config
	space      region.Space
	directory  *frames.Directory
	policy     eviction.Policy
	denier     eviction.Denier
	classifier Classifier
	logger     Logger
	diagnostic *log.Logger
	terminate  func(error)
	stats      Stats
}

// Stats summarizes the faults resolved by a Manager.
type Stats struct {
	Faults     uint64 // number of trapped accesses within the region
	Hits       uint64 // faults on resident pages
	Loads      uint64 // faults loading a page into a frame
	Evictions  uint64 // loads evicting a resident page
	WriteBacks uint64 // evictions of modified pages
}

// Option customizes a Manager created by Initialize.
type Option func(*Manager)

// WithLogger sets the consumer of the events produced for resolved faults.
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDiagnostics enables human readable tracing of the fault handling.
func WithDiagnostics(logger *log.Logger) Option {
	return func(m *Manager) {
		m.diagnostic = logger
	}
}

// WithClassifier replaces the classifier deciding on the type of accesses.
func WithClassifier(classifier Classifier) Option {
	return func(m *Manager) {
		if classifier != nil {
			m.classifier = classifier
		}
	}
}

// WithTerminate replaces the function called on fatal conditions. By
// default, the process is terminated after running the exit handlers
// registered with atexit.
func WithTerminate(terminate func(error)) Option {
	return func(m *Manager) {
		if terminate != nil {
			m.terminate = terminate
		}
	}
}

// Initialize sets up demand paging for the region described by the given
// configuration. The region must be part of the given space. Access to the
// whole region is denied and the new manager is installed as the trap
// handler of the space. A space can only be managed by a single manager.
func Initialize(config Config, space region.Space, opts ...Option) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	granularity := space.Granularity()
	if config.PageSize%granularity != 0 {
		return nil, fmt.Errorf("%w: page size %d is not a multiple of the protection granularity %d", ErrInvalidConfig, config.PageSize, granularity)
	}
	base, size := space.Base(), space.Size()
	if config.Base < base || config.Base-base > uintptr(size) || uintptr(config.Size) > uintptr(size)-(config.Base-base) {
		return nil, fmt.Errorf("%w: region [%#x, %#x) is not within space [%#x, %#x)", ErrInvalidConfig, config.Base, config.Base+uintptr(config.Size), base, base+uintptr(size))
	}
	if (config.Base-base)%uintptr(granularity) != 0 {
		return nil, fmt.Errorf("%w: region base %#x is not aligned to %d bytes", ErrInvalidConfig, config.Base, granularity)
	}

	m := &Manager{
		config:     config,
		space:      space,
		directory:  frames.NewDirectory(config.FrameCount),
		policy:     eviction.ForSelector(config.Policy),
		classifier: X86Classifier{},
		logger:     nopLogger{},
		terminate:  terminateProcess,
	}
	m.denier = pageDenier{m}
	for _, opt := range opts {
		opt(m)
	}

	if err := space.InstallHandler(m.HandleFault); err != nil {
		return nil, fmt.Errorf("failed to install fault handler: %w", err)
	}
	if err := space.Protect(config.Base, config.Size, region.None); err != nil {
		return nil, fmt.Errorf("failed to deny access to region: %w", err)
	}
	m.diagf("managing %d pages of %d bytes at %#x with %d frames, policy %v",
		config.PageCount(), config.PageSize, config.Base, config.FrameCount, config.Policy)
	return m, nil
}

func terminateProcess(err error) {
	atexit.Fatal(err)
}

// Config returns the configuration of the managed region.
func (m *Manager) Config() Config {
	return m.config
}

// Stats returns the counters of resolved faults.
func (m *Manager) Stats() Stats {
	return m.stats
}

// Resident returns the virtual pages currently held in frames, in ascending
// order.
func (m *Manager) Resident() []int {
	return m.directory.Pages()
}

// Flags returns the flags of the given page if it is resident.
func (m *Manager) Flags(page int) (frames.Flags, bool) {
	slot, found := m.directory.Find(page)
	if !found {
		return 0, false
	}
	return m.directory.Flags(slot), true
}

// UsedFrames returns the number of frames holding pages.
func (m *Manager) UsedFrames() int {
	return m.directory.Used()
}

func (m *Manager) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	mf.AddChild("directory", m.directory.GetMemoryFootprint())
	return mf
}

// fail reports a fatal condition and hands it to the terminate function.
// The error is returned for the case the terminate function returns.
func (m *Manager) fail(err error) error {
	m.diagf("fatal: %v", err)
	m.terminate(err)
	return err
}

func (m *Manager) diagf(format string, args ...any) {
	if m.diagnostic != nil {
		m.diagnostic.Printf(format, args...)
	}
}

// pageDenier revokes all rights of pages passed by the clock hand.
type pageDenier struct {
	m *Manager
}

func (d pageDenier) Deny(page int) error {
	return d.m.deny(page)
}

func (m *Manager) deny(page int) error {
	return m.protect(page, region.None)
}

func (m *Manager) protect(page int, rights region.Rights) error {
	if err := m.space.Protect(m.config.PageAddress(page), m.config.PageSize, rights); err != nil {
		return fmt.Errorf("%w: setting page %d to %v: %v", ErrProtection, page, rights, err)
	}
	return nil
}
