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
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Pagetrap/common"
	"github.com/Fantom-foundation/Pagetrap/vmm"
)

func TestGenerateTrace_AccessesStayWithinRegion(t *testing.T) {
	for _, distribution := range common.Distributions() {
		params := TraceParams{
			Distribution: distribution,
			Pages:        8,
			PageSize:     64,
			Accesses:     500,
			WriteRatio:   0.5,
			Seed:         7,
		}
		accesses := GenerateTrace(params)
		if len(accesses) != params.Accesses {
			t.Fatalf("unexpected number of accesses, wanted %d, got %d", params.Accesses, len(accesses))
		}
		writes := 0
		for _, access := range accesses {
			if access.Offset >= uint64(params.Pages*params.PageSize) {
				t.Errorf("%v produced access outside of region: %v", distribution, access)
			}
			if access.Type == vmm.Write {
				writes++
			}
		}
		if writes == 0 || writes == len(accesses) {
			t.Errorf("%v should mix reads and writes, got %d writes", distribution, writes)
		}
	}
}

func TestGenerateTrace_IsReproducible(t *testing.T) {
	params := TraceParams{Distribution: common.Exponential, Pages: 16, PageSize: 256, Accesses: 100, WriteRatio: 0.3, Seed: 3}
	a, b := GenerateTrace(params), GenerateTrace(params)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("traces generated from the same parameters differ")
	}
	params.Seed++
	if reflect.DeepEqual(a, GenerateTrace(params)) {
		t.Errorf("traces generated from different seeds should differ")
	}
}

func TestGenerateTrace_ReadOnlyTrace(t *testing.T) {
	params := TraceParams{Distribution: common.Sequential, Pages: 4, PageSize: 16, Accesses: 8, Seed: 1}
	for i, access := range GenerateTrace(params) {
		if access.Type != vmm.Read {
			t.Errorf("unexpected write %v", access)
		}
		if got, want := int(access.Offset)/params.PageSize, i%params.Pages; got != want {
			t.Errorf("unexpected page of access %d, wanted %d, got %d", i, want, got)
		}
	}
}

func TestWriteTrace_CanBeParsed(t *testing.T) {
	params := TraceParams{Distribution: common.Uniform, Pages: 16, PageSize: 256, Accesses: 50, WriteRatio: 0.5, Seed: 11}
	accesses := GenerateTrace(params)
	var buffer bytes.Buffer
	if err := WriteTrace(&buffer, params, accesses); err != nil {
		t.Fatalf("failed to write trace: %v", err)
	}
	parsed, err := ParseTrace(&buffer)
	if err != nil {
		t.Fatalf("failed to parse trace: %v", err)
	}
	if !reflect.DeepEqual(parsed, accesses) {
		t.Errorf("parsed trace differs from generated one")
	}
}

func TestTraceParams_InvalidParametersAreDetected(t *testing.T) {
	valid := TraceParams{Pages: 4, PageSize: 16, Accesses: 8, WriteRatio: 0.5}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, modify := range []func(*TraceParams){
		func(p *TraceParams) { p.Pages = 0 },
		func(p *TraceParams) { p.PageSize = -1 },
		func(p *TraceParams) { p.Accesses = -1 },
		func(p *TraceParams) { p.WriteRatio = 1.5 },
	} {
		params := valid
		modify(&params)
		if err := params.Validate(); err == nil {
			t.Errorf("parameters %+v should be invalid", params)
		}
	}
}

func TestGenerate_GeneratedTraceCanBeReplayed(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.txt")
	if _, err := runApp(t, "generate", "--distribution", "exponential", "--pages", "8", "--page-size", "256", "--accesses", "200", "--output", trace); err != nil {
		t.Fatalf("failed to generate trace: %v", err)
	}
	out, err := runApp(t, "run", "--policy", "third", "--frames", "3", "--pages", "8", "--page-size", "256", trace)
	if err != nil {
		t.Fatalf("failed to replay trace: %v", err)
	}
	if !strings.Contains(out, "Replayed 200 of 200 accesses") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestGenerate_UnknownDistributionIsReported(t *testing.T) {
	if _, err := runApp(t, "generate", "--distribution", "gaussian"); err == nil {
		t.Errorf("generating with an unknown distribution should fail")
	}
}
