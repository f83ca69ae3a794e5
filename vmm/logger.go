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
	"io"
)

//go:generate mockgen -source logger.go -destination logger_mocks.go -package vmm

// Logger consumes the events produced by a Manager. Implementations must not
// access the managed region.
type Logger interface {
	LogEvent(event Event)
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(Event)

func (f LoggerFunc) LogEvent(event Event) {
	f(event)
}

// TextLogger writes one line per event. Write errors are ignored, such that
// a failing output does not interfere with paging.
type TextLogger struct {
	out io.Writer
}

func NewTextLogger(out io.Writer) *TextLogger {
	return &TextLogger{out: out}
}

func (l *TextLogger) LogEvent(event Event) {
	fmt.Fprintln(l.out, event.String())
}

type nopLogger struct{}

func (nopLogger) LogEvent(Event) {}
