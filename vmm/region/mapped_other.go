// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

//go:build !linux

package region

import (
	"fmt"
	"runtime"
)

// Map is only supported on linux; other platforms should use a Soft space.
func Map(size int) (Space, error) {
	return nil, fmt.Errorf("memory mapped spaces are not supported on %s", runtime.GOOS)
}
