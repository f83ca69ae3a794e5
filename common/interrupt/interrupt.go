// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interrupt

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fantom-foundation/Pagetrap/common"
)

const ErrCanceled = common.ConstError("interrupted")

// IsCancelled returns true if the given context's CancelFunc has been called.
// Otherwise, returns false.
func IsCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Check returns ErrCanceled, annotated with the cause of the cancellation,
// once the given context is done, and nil before.
func Check(ctx context.Context) error {
	if !IsCancelled(ctx) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCanceled, context.Cause(ctx))
}

// Register catches SIGTERM and SIGINT signals and cancels the returned
// context with the received signal as its cause. Long running loops, like
// trace replays, poll the context between steps. The returned function
// stops listening for signals and cancels the context.
func Register(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case sig := <-c:
			log.Printf("received %v, stopping after the current access", sig)
			cancel(fmt.Errorf("received signal %v", sig))
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}
