// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker subscribes to the OS signals that normally terminate the process.
// By default it listens for os.Interrupt, syscall.SIGINT, syscall.SIGTERM, and syscall.SIGQUIT.
//
// Subscribing keeps quicktest alive while a child process handles the signal,
// so the child's exit code can still be reported and propagated.
// Watch cancels a context once the same signal arrives twice.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/quicktest/internal/ctxlog"
)

// TermSignals are the signals subscribed to when none are given to New.
var TermSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel that receives the given signals, or TermSignals if none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = TermSignals
	}

	ctxlog.Debug(ctx, "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops delivery of signals to ch. The channel is not closed.
func Stop(ctx context.Context, ch chan os.Signal) {
	ctxlog.Debug(ctx, "stopping signal broker")
	signal.Stop(ch)
}
