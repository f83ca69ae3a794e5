// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Fantom-foundation/Pagetrap/common/interrupt"
	"github.com/Fantom-foundation/Pagetrap/vmm"
	"github.com/Fantom-foundation/Pagetrap/vmm/eviction"
	"github.com/Fantom-foundation/Pagetrap/vmm/region"
	"github.com/tebeka/atexit"
	"github.com/urfave/cli/v2"
)

var Run = cli.Command{
	Action: withProfiling(runTrace),
	Name:   "run",
	Usage:  "replays a memory access trace on a demand paged region",
	Flags: []cli.Flag{
		&policyFlag,
		&framesFlag,
		&pagesFlag,
		&pageSizeFlag,
		&backendFlag,
		&outputFlag,
		&verboseFlag,
	},
	ArgsUsage: "<trace file>",
}

var (
	policyFlag = cli.StringFlag{
		Name:  "policy",
		Usage: "eviction policy, fifo, third, or a numeric selector",
		Value: eviction.FIFO.String(),
	}
	framesFlag = cli.IntFlag{
		Name:  "frames",
		Usage: "number of physical frames",
		Value: 4,
	}
	pagesFlag = cli.IntFlag{
		Name:  "pages",
		Usage: "number of virtual pages in the managed region",
		Value: 16,
	}
	pageSizeFlag = cli.IntFlag{
		Name:  "page-size",
		Usage: "size of pages and frames in bytes, a multiple of the OS page size for the mmap backend",
		Value: 4096,
	}
	backendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "address space hosting the region, soft or mmap",
		Value: "soft",
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "file receiving the event log, standard output if empty",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "print diagnostics of the fault handling to standard error",
	}
)

// softBase is the address the region is placed at by the soft backend.
const softBase = uintptr(0x40000000)

func runTrace(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("missing trace file")
	}
	selector, err := eviction.ParseSelector(context.String(policyFlag.Name))
	if err != nil {
		return err
	}
	verbose := context.Bool(verboseFlag.Name)

	accesses, err := readTrace(context.Args().Get(0))
	if err != nil {
		return err
	}

	pageSize := context.Int(pageSizeFlag.Name)
	size := context.Int(pagesFlag.Name) * pageSize
	space, err := openSpace(context.String(backendFlag.Name), size, pageSize)
	if err != nil {
		return err
	}
	defer space.Close()

	out := context.App.Writer
	if name := context.String(outputFlag.Name); name != "" {
		file, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}
	writer := bufio.NewWriter(out)
	defer writer.Flush()
	// fatal faults terminate the process, the events logged so far are kept
	atexit.Register(func() { writer.Flush() })

	opts := []vmm.Option{vmm.WithLogger(vmm.NewTextLogger(writer))}
	if verbose {
		opts = append(opts, vmm.WithDiagnostics(log.New(os.Stderr, "vmm: ", log.Lmicroseconds)))
	}
	config := vmm.Config{
		Policy:     selector,
		Base:       space.Base(),
		Size:       size,
		FrameCount: context.Int(framesFlag.Name),
		PageSize:   pageSize,
	}
	manager, err := vmm.Initialize(config, space, opts...)
	if err != nil {
		return err
	}

	ctx, stop := interrupt.Register(context.Context)
	defer stop()
	processed, replayErr := replay(ctx, space, config.Base, accesses)
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}
	printSummary(context.App.Writer, manager, processed, len(accesses), verbose)
	return replayErr
}

func readTrace(path string) ([]Access, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer file.Close()
	return ParseTrace(file)
}

func openSpace(backend string, size, pageSize int) (region.Space, error) {
	switch strings.ToLower(backend) {
	case "soft":
		space, err := region.NewSoft(softBase, size, pageSize)
		if err != nil {
			return nil, err
		}
		return space, nil
	case "mmap":
		return region.Map(size)
	}
	return nil, fmt.Errorf("unknown backend %q, supported are soft and mmap", backend)
}

// replay performs the given accesses on the space until all are done or the
// context is cancelled. It returns the number of completed accesses.
func replay(ctx context.Context, space region.Space, base uintptr, accesses []Access) (int, error) {
	for i, access := range accesses {
		if err := interrupt.Check(ctx); err != nil {
			return i, err
		}
		addr := base + uintptr(access.Offset)
		var err error
		if access.Type == vmm.Write {
			err = space.Store(addr, access.Value)
		} else {
			_, err = space.Load(addr)
		}
		if err != nil {
			return i, fmt.Errorf("access %d (%v) failed: %w", i, access, err)
		}
	}
	return len(accesses), nil
}

func printSummary(out io.Writer, manager *vmm.Manager, processed, total int, verbose bool) {
	stats := manager.Stats()
	config := manager.Config()
	fmt.Fprintf(out, "Replayed %d of %d accesses\n", processed, total)
	fmt.Fprintf(out, "\tPolicy:      %v\n", config.Policy)
	fmt.Fprintf(out, "\tFrames:      %d of %d used\n", manager.UsedFrames(), config.FrameCount)
	fmt.Fprintf(out, "\tFaults:      %d\n", stats.Faults)
	fmt.Fprintf(out, "\tHits:        %d\n", stats.Hits)
	fmt.Fprintf(out, "\tLoads:       %d\n", stats.Loads)
	fmt.Fprintf(out, "\tEvictions:   %d\n", stats.Evictions)
	fmt.Fprintf(out, "\tWrite-backs: %d\n", stats.WriteBacks)
	fmt.Fprintf(out, "\tResident:    %v\n", manager.Resident())
	if verbose {
		fmt.Fprintf(out, "\nMemory footprint:\n%v", manager.GetMemoryFootprint())
	}
}
