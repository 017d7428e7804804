// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell runs command lines through the platform shell ($SHELL or /bin/sh with -c,
// cmd.exe /C on Windows) as synchronous child processes attached to the caller's terminal.
//
// A process that runs to completion reports its exit code, whatever it is.
// Only a failure to start or wait for the process is returned as an error.
package shell
