// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"regexp"
	"strings"
	"testing"
)

func expectSubstr(t *testing.T, str, substring string) {
	t.Helper()
	if !strings.Contains(str, substring) {
		t.Errorf("expected %v to contain substring %v", str, substring)
	}
}

func TestMemoryFootprint_IsFormatable(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("records", NewMemoryFootprint(50*1024))
	fp.AddChild("index", NewMemoryFootprint(10*1024*1024+200*1024))

	print := fp.String()
	expectSubstr(t, print, "10.2 MB .\n")
	expectSubstr(t, print, "50.0 KB ./records")
	expectSubstr(t, print, "10.2 MB ./index")
}

func TestMemoryFootprint_Value(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", NewMemoryFootprint(30))
	if got, want := fp.Value(), uintptr(12); got != want {
		t.Errorf("unexpected value, wanted %d, got %d", want, got)
	}
	if got, want := fp.Total(), uintptr(42); got != want {
		t.Errorf("unexpected total, wanted %d, got %d", want, got)
	}
}

func TestMemoryFootprint_RecursiveChildIsCountedOnce(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", fp)

	if got, want := fp.Total(), uintptr(12); got != want {
		t.Errorf("unexpected total, wanted %d, got %d", want, got)
	}
}

func TestMemoryFootprint_NilChildIsIgnored(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", nil)

	if got, want := fp.Total(), uintptr(12); got != want {
		t.Errorf("unexpected total, wanted %d, got %d", want, got)
	}
}

func TestMemoryFootprint_PrintsComponentsInOrderBeforeParent(t *testing.T) {
	fp := NewMemoryFootprint(4)
	fp.AddChild("b", NewMemoryFootprint(5))
	fp.AddChild("a", NewMemoryFootprint(6))
	fp.AddChild("c", NewMemoryFootprint(7))

	print := fp.String()
	match, err := regexp.MatchString(`6.*a[\S\s]*5.*b[\S\s]*7.*c[\S\s]*22.*\.`, print)
	if err != nil {
		t.Fatalf("failed to match regex: %v", err)
	}
	if !match {
		t.Errorf("entries not in order:\n%v", print)
	}
}
