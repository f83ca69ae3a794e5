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
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEventKind_CodesAreStable(t *testing.T) {
	tests := []struct {
		kind EventKind
		code int
		name string
	}{
		{ReadFault, 0, "read-fault"},
		{WriteFault, 1, "write-fault"},
		{FirstWrite, 2, "first-write"},
		{ResidentRead, 3, "resident-read"},
		{RepeatWrite, 4, "repeat-write"},
	}
	for _, test := range tests {
		if got := test.kind.Code(); got != test.code {
			t.Errorf("unexpected code of %v, wanted %d, got %d", test.kind, test.code, got)
		}
		if got := test.kind.String(); got != test.name {
			t.Errorf("unexpected name, wanted %q, got %q", test.name, got)
		}
	}
	if got, want := EventKind(12).String(), "unknown(12)"; got != want {
		t.Errorf("unexpected name, wanted %q, got %q", want, got)
	}
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{
			Event{Page: 3, Kind: ReadFault, EvictedPage: NoPage, PhysicalAddress: 16},
			"page=3 event=read-fault code=0 evicted=- write-back=false phys=0x10",
		},
		{
			Event{Page: 7, Kind: WriteFault, EvictedPage: 2, WriteBack: true, PhysicalAddress: 0},
			"page=7 event=write-fault code=1 evicted=2 write-back=true phys=0x0",
		},
		{
			Event{Page: 0, Kind: RepeatWrite, EvictedPage: NoPage, PhysicalAddress: 4097},
			"page=0 event=repeat-write code=4 evicted=- write-back=false phys=0x1001",
		},
	}
	for _, test := range tests {
		if got := test.event.String(); got != test.want {
			t.Errorf("unexpected print, wanted %q, got %q", test.want, got)
		}
	}
}

func TestEvent_EvictedPageZeroIsAnEviction(t *testing.T) {
	if !(Event{EvictedPage: 0}).Evicted() {
		t.Errorf("page 0 is a valid evicted page")
	}
	if (Event{EvictedPage: NoPage}).Evicted() {
		t.Errorf("NoPage should not be an eviction")
	}
}

func TestTextLogger_WritesOneLinePerEvent(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewTextLogger(&buffer)
	events := []Event{
		{Page: 1, Kind: ReadFault, EvictedPage: NoPage},
		{Page: 1, Kind: FirstWrite, EvictedPage: NoPage, PhysicalAddress: 8},
	}
	for _, e := range events {
		logger.LogEvent(e)
	}
	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	if len(lines) != len(events) {
		t.Fatalf("unexpected number of lines, wanted %d, got %d", len(events), len(lines))
	}
	for i, e := range events {
		if lines[i] != e.String() {
			t.Errorf("unexpected line %d, wanted %q, got %q", i, e.String(), lines[i])
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("injected")
}

func TestTextLogger_WriteErrorsAreIgnored(t *testing.T) {
	logger := NewTextLogger(failingWriter{})
	logger.LogEvent(Event{Page: 1, Kind: ReadFault, EvictedPage: NoPage})
}

func TestLoggerFunc_ForwardsEvents(t *testing.T) {
	var got []Event
	logger := LoggerFunc(func(e Event) { got = append(got, e) })
	want := Event{Page: 4, Kind: ResidentRead, EvictedPage: NoPage}
	logger.LogEvent(want)
	if len(got) != 1 || got[0] != want {
		t.Errorf("unexpected events, wanted [%v], got %v", want, got)
	}
}
