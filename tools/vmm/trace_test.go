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
	"reflect"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Pagetrap/vmm"
)

func TestParseTrace_ReadsAccesses(t *testing.T) {
	trace := `
# a comment
r 0
w 0x10 7
READ 256   # trailing comment
write 4096
w 1 0xff

`
	got, err := ParseTrace(strings.NewReader(trace))
	if err != nil {
		t.Fatalf("failed to parse trace: %v", err)
	}
	want := []Access{
		{Type: vmm.Read, Offset: 0},
		{Type: vmm.Write, Offset: 16, Value: 7},
		{Type: vmm.Read, Offset: 256},
		{Type: vmm.Write, Offset: 4096},
		{Type: vmm.Write, Offset: 1, Value: 255},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected accesses, wanted %v, got %v", want, got)
	}
}

func TestParseTrace_EmptyTraceHasNoAccesses(t *testing.T) {
	got, err := ParseTrace(strings.NewReader("# nothing\n\n"))
	if err != nil {
		t.Fatalf("failed to parse trace: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unexpected accesses %v", got)
	}
}

func TestParseTrace_InvalidLinesAreReported(t *testing.T) {
	tests := map[string]string{
		"x 12":        "unknown access type",
		"r":           "read needs exactly one offset",
		"r 1 2":       "read needs exactly one offset",
		"w":           "write needs an offset",
		"w 1 2 3":     "write needs an offset",
		"r -4":        "invalid offset",
		"r twelve":    "invalid offset",
		"w 12 256":    "invalid value",
		"w 12 nine":   "invalid value",
		"r 0x1g":      "invalid offset",
		"w 0x10 0x1z": "invalid value",
	}
	for line, want := range tests {
		_, err := ParseTrace(strings.NewReader("r 0\n" + line + "\n"))
		if err == nil {
			t.Errorf("parsing %q should fail", line)
			continue
		}
		if !strings.Contains(err.Error(), want) || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("unexpected error for %q, wanted %q on line 2, got %v", line, want, err)
		}
	}
}

func TestAccess_String(t *testing.T) {
	if got, want := (Access{Type: vmm.Read, Offset: 32}).String(), "r 0x20"; got != want {
		t.Errorf("unexpected print, wanted %q, got %q", want, got)
	}
	if got, want := (Access{Type: vmm.Write, Offset: 32, Value: 5}).String(), "w 0x20 5"; got != want {
		t.Errorf("unexpected print, wanted %q, got %q", want, got)
	}
}
