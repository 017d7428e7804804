// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"os"
)

// Executor runs command lines through the platform shell, attached to the given streams.
type Executor struct {
	Stdout *os.File
	Stderr *os.File
}

// Run runs commandLine and waits for it. The error is non-nil only if the
// shell could not be started; a command that fails reports it through the exit code.
func (e *Executor) Run(ctx context.Context, commandLine string) (int, error) {
	cmd, err := New(ctx, commandLine)
	if err != nil {
		return -1, err
	}

	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	res := cmd.Run(ctx)

	return res.ExitCode, res.Error
}
