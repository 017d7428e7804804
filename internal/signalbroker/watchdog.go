// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/quicktest/internal/ctxlog"
)

// Watch consumes sigCh until it is closed or the context is done.
// The first signal of a type is only logged; the second of the same type
// cancels the context and closes sigCh.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Info(ctx, "received second signal of type, cancelling", "signal", sig.String())
				signal.Stop(sigCh)
				close(sigCh)
				cancel()

				return
			}

			ctxlog.Info(ctx, "received first signal of type, waiting for child process", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
