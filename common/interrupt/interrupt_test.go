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
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestRegister_CancelsContextWhenInterrupted(t *testing.T) {
	ctx, stop := Register(context.Background())
	defer stop()
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		t.Fatal("failed to create a SIGINT signal")
	}
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not canceled by SIGINT")
	}
	err := Check(ctx)
	if !errors.Is(err, ErrCanceled) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrCanceled, err)
	}
	if !strings.Contains(err.Error(), "interrupt") {
		t.Errorf("error should name the received signal, got %v", err)
	}
}

func TestRegister_StopCancelsContext(t *testing.T) {
	ctx, stop := Register(context.Background())
	if IsCancelled(ctx) {
		t.Fatalf("context should not be cancelled before stop")
	}
	stop()
	if !IsCancelled(ctx) {
		t.Errorf("context should be cancelled after stop")
	}
	if err := Check(ctx); !errors.Is(err, ErrCanceled) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrCanceled, err)
	}
}

func TestCheck_ActiveContextIsNotAnError(t *testing.T) {
	if err := Check(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIsCancelled_DetectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if IsCancelled(ctx) {
		t.Errorf("fresh context should not be cancelled")
	}
	cancel()
	if !IsCancelled(ctx) {
		t.Errorf("context should be cancelled")
	}
}
