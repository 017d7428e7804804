// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	shellEnv             = "SHELL"
)

// ErrCommandNotFound is returned when the command line is empty.
var ErrCommandNotFound = errors.New("command not found")

// New creates a Command that runs commandLine through the platform shell.
// The command line is passed to the shell verbatim.
func New(ctx context.Context, commandLine string) (*Command, error) {
	if strings.TrimSpace(commandLine) == "" {
		return nil, ErrCommandNotFound
	}

	var args []string

	switch runtime.GOOS {
	case GOOSWindows:
		args = []string{commandSwitchWindows, commandLine}
	default:
		args = []string{commandSwitchUnix, commandLine}
	}

	return &Command{
		Label: commandLine,
		Path:  defaultShell(ctx),
		Args:  args,
	}, nil
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if sh := os.Getenv(shellEnv); sh != "" {
		logger(ctx).Debug("using SHELL environment variable", "shell", sh)
		return sh
	}

	return binSh
}
