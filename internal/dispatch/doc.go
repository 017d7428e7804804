// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch runs the quicktest pipeline: an optional dependency check,
// then the command selected from the dispatch table, then a Success/Failed report.
//
// The pipeline is strictly linear. A failed install ends it with exit code 1
// before the selected command is considered. A command that cannot be started
// is reported as a failure with exit code 1. Any other exit code of the
// selected command is returned unchanged so that CI can branch on it.
package dispatch
