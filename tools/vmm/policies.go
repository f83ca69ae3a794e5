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
	"fmt"

	"github.com/Fantom-foundation/Pagetrap/vmm/eviction"
	"github.com/urfave/cli/v2"
)

var Policies = cli.Command{
	Action: policies,
	Name:   "policies",
	Usage:  "lists the supported eviction policies",
}

func policies(context *cli.Context) error {
	out := context.App.Writer
	for _, s := range eviction.Selectors() {
		fmt.Fprintf(out, "%d\t%v\n", int(s), s)
	}
	return nil
}
