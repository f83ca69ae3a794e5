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
	"os"

	"github.com/Fantom-foundation/Pagetrap/common"
	"github.com/Fantom-foundation/Pagetrap/vmm"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/rand"
)

var Generate = cli.Command{
	Action: generate,
	Name:   "generate",
	Usage:  "writes a synthetic memory access trace",
	Flags: []cli.Flag{
		&distributionFlag,
		&pagesFlag,
		&pageSizeFlag,
		&accessesFlag,
		&writeRatioFlag,
		&seedFlag,
		&outputFlag,
	},
}

var (
	distributionFlag = cli.StringFlag{
		Name:  "distribution",
		Usage: "distribution of accessed pages, sequential, uniform, or exponential",
		Value: common.Uniform.String(),
	}
	accessesFlag = cli.IntFlag{
		Name:  "accesses",
		Usage: "number of accesses to generate",
		Value: 1000,
	}
	writeRatioFlag = cli.Float64Flag{
		Name:  "write-ratio",
		Usage: "fraction of accesses being writes",
		Value: 0.3,
	}
	seedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the random generator",
		Value: 1,
	}
)

// TraceParams describes a synthetic trace.
type TraceParams struct {
	Distribution common.Distribution
	Pages        int
	PageSize     int
	Accesses     int
	WriteRatio   float64
	Seed         uint64
}

func (p TraceParams) Validate() error {
	if p.Pages <= 0 || p.PageSize <= 0 {
		return fmt.Errorf("pages and page size must be positive, got %d and %d", p.Pages, p.PageSize)
	}
	if p.Accesses < 0 {
		return fmt.Errorf("number of accesses must not be negative, got %d", p.Accesses)
	}
	if p.WriteRatio < 0 || p.WriteRatio > 1 {
		return fmt.Errorf("write ratio must be within [0, 1], got %v", p.WriteRatio)
	}
	return nil
}

// GenerateTrace produces accesses to pages picked by the configured
// distribution at random offsets within the page. The same parameters
// always produce the same trace.
func GenerateTrace(params TraceParams) []Access {
	source := rand.New(rand.NewSource(params.Seed))
	pages := params.Distribution.NewSampler(params.Pages, source)
	res := make([]Access, 0, params.Accesses)
	for i := 0; i < params.Accesses; i++ {
		access := Access{
			Type:   vmm.Read,
			Offset: uint64(pages.Next()*params.PageSize + source.Intn(params.PageSize)),
		}
		if source.Float64() < params.WriteRatio {
			access.Type = vmm.Write
			access.Value = byte(source.Intn(256))
		}
		res = append(res, access)
	}
	return res
}

// WriteTrace writes accesses in the format read by ParseTrace.
func WriteTrace(out io.Writer, params TraceParams, accesses []Access) error {
	writer := bufio.NewWriter(out)
	fmt.Fprintf(writer, "# distribution=%v pages=%d page-size=%d write-ratio=%v seed=%d\n",
		params.Distribution, params.Pages, params.PageSize, params.WriteRatio, params.Seed)
	for _, access := range accesses {
		fmt.Fprintln(writer, access.String())
	}
	return writer.Flush()
}

func generate(context *cli.Context) error {
	distribution, err := common.ParseDistribution(context.String(distributionFlag.Name))
	if err != nil {
		return err
	}
	params := TraceParams{
		Distribution: distribution,
		Pages:        context.Int(pagesFlag.Name),
		PageSize:     context.Int(pageSizeFlag.Name),
		Accesses:     context.Int(accessesFlag.Name),
		WriteRatio:   context.Float64(writeRatioFlag.Name),
		Seed:         context.Uint64(seedFlag.Name),
	}
	if err := params.Validate(); err != nil {
		return err
	}

	out := context.App.Writer
	if name := context.String(outputFlag.Name); name != "" {
		file, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}
	return WriteTrace(out, params, GenerateTrace(params))
}
