// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the quicktest command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/quicktest"
	"github.com/matt-FFFFFF/quicktest/cmd/quicktest/root"
	"github.com/matt-FFFFFF/quicktest/internal/ctxlog"
	"github.com/matt-FFFFFF/quicktest/internal/shell"
	"github.com/matt-FFFFFF/quicktest/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd := root.New(root.Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Executor: &shell.Executor{
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	})
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", quicktest.Version, quicktest.Commit)

	err := rootCmd.Run(ctx, os.Args)
	code := root.ExitCode(err)

	if msg := root.ExitMessage(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg) //nolint:errcheck
	}

	ctxlog.Debug(ctx, "exiting", "exitCode", code)
	cancel()
	os.Exit(code)
}
