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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/Pagetrap/vmm"
)

// Access is a single entry of a memory access trace.
type Access struct {
	Type   vmm.AccessType
	Offset uint64 // relative to the base of the managed region
	Value  byte   // the value stored by writes
}

func (a Access) String() string {
	if a.Type == vmm.Write {
		return fmt.Sprintf("w %#x %d", a.Offset, a.Value)
	}
	return fmt.Sprintf("r %#x", a.Offset)
}

// ParseTrace reads a trace with one access per line. Reads are written as
// `r <offset>`, writes as `w <offset> [value]`; offsets and values may be
// given in decimal or, prefixed by 0x, in hexadecimal. Empty lines and
// everything following a # are ignored.
func ParseTrace(in io.Reader) ([]Access, error) {
	var res []Access
	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		access, err := parseAccess(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, access)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return res, nil
}

func parseAccess(fields []string) (Access, error) {
	var access Access
	switch strings.ToLower(fields[0]) {
	case "r", "read":
		if len(fields) != 2 {
			return access, fmt.Errorf("read needs exactly one offset, got %q", strings.Join(fields, " "))
		}
		access.Type = vmm.Read
	case "w", "write":
		if len(fields) != 2 && len(fields) != 3 {
			return access, fmt.Errorf("write needs an offset and an optional value, got %q", strings.Join(fields, " "))
		}
		access.Type = vmm.Write
	default:
		return access, fmt.Errorf("unknown access type %q", fields[0])
	}
	offset, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return access, fmt.Errorf("invalid offset %q: %w", fields[1], err)
	}
	access.Offset = offset
	if len(fields) == 3 {
		value, err := strconv.ParseUint(fields[2], 0, 8)
		if err != nil {
			return access, fmt.Errorf("invalid value %q: %w", fields[2], err)
		}
		access.Value = byte(value)
	}
	return access, nil
}
