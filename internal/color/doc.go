// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decides whether color output is enabled and colorizes strings with ANSI escape codes.
//
// Color is used when stdout is an interactive terminal (detected with golang.org/x/term)
// and TERM is not "dumb", or when FORCE_COLOR is set to "1".
// The decision is never cached; it is made again for every string or line written.
package color
